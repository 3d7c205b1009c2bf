package catalog

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/convert"
	"github.com/j4587698/tinydb/logger"
)

// sysCatalogTable is the reserved system collection every MetadataDocument
// row lives in. Its name begins with "__", so it is itself exempt from
// schema validation.
const sysCatalogTable = "__sys_catalog"

// MetadataManager is the schema catalog: one MetadataDocument row per user
// table, cached alongside a derived validationProfile, backed by a
// Collection the manager treats as opaque storage. A single MetadataManager
// is meant to be shared across an open database instance; its caches are
// safe for concurrent use, matching the "readers may race with writers"
// requirement on catalog state.
type MetadataManager struct {
	store    Collection
	readOnly bool

	mu       sync.RWMutex
	rows     map[string]*MetadataDocument
	profiles map[string]*validationProfile

	group singleflight.Group
}

// NewMetadataManager returns a MetadataManager backed by store. readOnly
// mirrors config.Config.ReadOnly: when true, EnsureSchema raises
// InvalidOperation instead of creating a missing schema.
func NewMetadataManager(store Collection, readOnly bool) *MetadataManager {
	return &MetadataManager{
		store:    store,
		readOnly: readOnly,
		rows:     make(map[string]*MetadataDocument),
		profiles: make(map[string]*validationProfile),
	}
}

// Save idempotently upserts metadata: CreatedAt is preserved from any
// existing row with the same TableName, UpdatedAt is set to now, and the
// cached validation profile for that table is invalidated so the next read
// rebuilds it from the new column set.
func (m *MetadataManager) Save(metadata *MetadataDocument) error {
	if metadata == nil || metadata.TableName == "" {
		return bson.NewError(bson.ErrKindArgumentNull, "metadata.TableName is required")
	}

	now := time.Now().UTC()
	metadata.UpdatedAt = now

	m.mu.Lock()
	if existing, ok := m.rows[metadata.TableName]; ok {
		metadata.CreatedAt = existing.CreatedAt
	} else if existing, _, err := m.store.FindByID(bson.String(metadata.TableName)); err == nil && existing != nil {
		metadata.CreatedAt = existing.Get("createdAt").AsTime()
	} else {
		metadata.CreatedAt = now
	}
	m.mu.Unlock()

	doc, err := metadataToDocument(metadata)
	if err != nil {
		return err
	}
	if _, found, err := m.store.FindByID(bson.String(metadata.TableName)); err != nil {
		return err
	} else if found {
		err = m.store.Update(doc)
	} else {
		err = m.store.Insert(doc)
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.rows[metadata.TableName] = metadata
	delete(m.profiles, metadata.TableName)
	m.mu.Unlock()

	logger.Debug("catalog: saved schema for table %s (%d columns)", metadata.TableName, len(metadata.Columns))
	return nil
}

// Get returns the cached MetadataDocument for tableName, reading through to
// storage and populating the cache on a miss. Concurrent misses for the
// same table collapse into a single storage read via singleflight.
func (m *MetadataManager) Get(tableName string) (*MetadataDocument, error) {
	m.mu.RLock()
	if row, ok := m.rows[tableName]; ok {
		m.mu.RUnlock()
		logger.TraceIf("catalog", "cache hit for table %s", tableName)
		return row, nil
	}
	m.mu.RUnlock()
	logger.TraceIf("catalog", "cache miss for table %s, reading through to storage", tableName)

	v, err, _ := m.group.Do(tableName, func() (any, error) {
		m.mu.RLock()
		if row, ok := m.rows[tableName]; ok {
			m.mu.RUnlock()
			return row, nil
		}
		m.mu.RUnlock()

		doc, found, err := m.store.FindByID(bson.String(tableName))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, bson.NewError(bson.ErrKindNotFound, "no schema registered for table "+tableName)
		}
		meta, err := documentToMetadata(doc)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.rows[tableName] = meta
		delete(m.profiles, tableName)
		m.mu.Unlock()
		return meta, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MetadataDocument), nil
}

// Delete removes tableName's row from storage and from both caches.
func (m *MetadataManager) Delete(tableName string) error {
	if err := m.store.Delete(bson.String(tableName)); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.rows, tableName)
	delete(m.profiles, tableName)
	m.mu.Unlock()
	return nil
}

// GetAllTableNames returns every registered user table name, excluding
// the catalog's own system row.
func (m *MetadataManager) GetAllTableNames() ([]string, error) {
	docs, err := m.store.FindAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		if name := d.Get("_id").AsString(); name != "" && name != sysCatalogTable {
			names = append(names, name)
		}
	}
	return names, nil
}

// EnsureSchema guarantees tableName has a registered schema, deriving one
// from entity's exported fields by reflection and saving it when absent;
// registered mapping adapters are not consulted. In read-only mode, a missing schema raises InvalidOperation
// instead of being created.
func (m *MetadataManager) EnsureSchema(tableName string, entity any) error {
	_, err := m.Get(tableName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, bson.ErrNotFound) {
		return err
	}

	if m.readOnly {
		return bson.NewError(bson.ErrKindInvalidOperation, "no schema registered for table "+tableName+" and manager is read-only")
	}

	meta, err := columnsFromEntity(tableName, entity)
	if err != nil {
		return err
	}
	return m.Save(meta)
}

// profileFor returns the cached validationProfile for tableName, building
// and caching it on a miss via the same singleflight group Get uses, so a
// concurrent profile build for the same table never runs twice.
func (m *MetadataManager) profileFor(tableName string) (*validationProfile, error) {
	m.mu.RLock()
	if p, ok := m.profiles[tableName]; ok {
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	logger.TraceIf("catalog", "building validation profile for table %s", tableName)
	v, err, _ := m.group.Do("profile:"+tableName, func() (any, error) {
		m.mu.RLock()
		if p, ok := m.profiles[tableName]; ok {
			m.mu.RUnlock()
			return p, nil
		}
		m.mu.RUnlock()

		meta, err := m.Get(tableName)
		if err != nil {
			return nil, err
		}
		profile := buildValidationProfile(meta)

		m.mu.Lock()
		m.profiles[tableName] = profile
		m.mu.Unlock()
		return profile, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*validationProfile), nil
}

// metadataToDocument converts a MetadataDocument into its catalog-row
// wire shape: stored under its own table name as the document's _id, with
// columns as a BSON array of sub-documents.
func metadataToDocument(m *MetadataDocument) (*bson.Document, error) {
	cols := bson.NewArray()
	for _, c := range m.Columns {
		colDoc := bson.NewDocument().
			Set("fieldName", bson.String(c.FieldName)).
			Set("propertyName", bson.String(c.PropertyName)).
			Set("typeName", bson.String(c.TypeName)).
			Set("ordinal", bson.Int32(int32(c.Ordinal))).
			Set("required", bson.Bool(c.Required)).
			Set("primaryKey", bson.Bool(c.PrimaryKey)).
			Set("displayName", bson.String(c.DisplayName)).
			Set("description", bson.String(c.Description)).
			Set("foreignKey", bson.String(c.ForeignKey)).
			Set("hasDefault", bson.Bool(c.HasDefault))
		if c.HasDefault {
			dv, err := convert.ToBSON(c.DefaultValue)
			if err != nil {
				return nil, err
			}
			colDoc = colDoc.Set("defaultValue", dv)
		}
		cols = cols.Append(bson.DocumentValue(colDoc))
	}

	doc := bson.NewDocument().
		Set("_id", bson.String(m.TableName)).
		Set("typeName", bson.String(m.TypeName)).
		Set("displayName", bson.String(m.DisplayName)).
		Set("description", bson.String(m.Description)).
		Set("columns", bson.ArrayValue(cols)).
		Set("createdAt", bson.DateTime(m.CreatedAt)).
		Set("updatedAt", bson.DateTime(m.UpdatedAt))
	return doc, nil
}

func documentToMetadata(doc *bson.Document) (*MetadataDocument, error) {
	m := &MetadataDocument{
		TableName:   doc.Get("_id").AsString(),
		TypeName:    doc.Get("typeName").AsString(),
		DisplayName: doc.Get("displayName").AsString(),
		Description: doc.Get("description").AsString(),
		CreatedAt:   doc.Get("createdAt").AsTime(),
		UpdatedAt:   doc.Get("updatedAt").AsTime(),
	}

	colsVal := doc.Get("columns")
	if colsVal.Kind() != bson.KindArray {
		return m, nil
	}
	arr := colsVal.AsArray()
	m.Columns = make([]Column, 0, arr.Len())
	arr.Range(func(_ int, v bson.Value) bool {
		cd := v.AsDocument()
		col := Column{
			FieldName:    cd.Get("fieldName").AsString(),
			PropertyName: cd.Get("propertyName").AsString(),
			TypeName:     cd.Get("typeName").AsString(),
			Ordinal:      int(cd.Get("ordinal").AsInt32()),
			Required:     cd.Get("required").AsBool(),
			PrimaryKey:   cd.Get("primaryKey").AsBool(),
			DisplayName:  cd.Get("displayName").AsString(),
			Description:  cd.Get("description").AsString(),
			ForeignKey:   cd.Get("foreignKey").AsString(),
			HasDefault:   cd.Get("hasDefault").AsBool(),
		}
		if col.HasDefault {
			dv, _ := convert.NaturalValue(cd.Get("defaultValue"))
			col.DefaultValue = dv
		}
		m.Columns = append(m.Columns, col)
		return true
	})
	return m, nil
}
