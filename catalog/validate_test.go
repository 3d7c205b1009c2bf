package catalog_test

import (
	"errors"
	"testing"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/catalog"
)

func newManagerWithEmailSchema(t *testing.T) *catalog.MetadataManager {
	t.Helper()
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.Save(sampleMetadata("people")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return m
}

// TestValidateForWriteRequiredFieldMissingScenario mirrors the
// save-schema-then-validate walkthrough: a table with a required non-
// primary-key column "email" rejects a document that omits it and
// accepts one that supplies it.
func TestValidateForWriteRequiredFieldMissingScenario(t *testing.T) {
	m := newManagerWithEmailSchema(t)

	missing := bson.NewDocument().Set("_id", bson.Int32(1))
	if err := m.ValidateForWrite("people", missing, catalog.ValidationLoose); !errors.Is(err, bson.ErrSchemaValidation) {
		t.Fatalf("expected SchemaValidation for missing email, got %v", err)
	}

	present := bson.NewDocument().Set("_id", bson.Int32(1)).Set("email", bson.String("x@y"))
	if err := m.ValidateForWrite("people", present, catalog.ValidationLoose); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidateForWriteNoneModeSkipsAllChecks(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	doc := bson.NewDocument().Set("_id", bson.Int32(1))
	if err := m.ValidateForWrite("people", doc, catalog.ValidationNone); err != nil {
		t.Fatalf("None mode should never reject, got %v", err)
	}
}

func TestValidateForWriteRequiredFieldNullRejected(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	doc := bson.NewDocument().Set("_id", bson.Int32(1)).Set("email", bson.Null)
	if err := m.ValidateForWrite("people", doc, catalog.ValidationLoose); !errors.Is(err, bson.ErrSchemaValidation) {
		t.Fatalf("expected SchemaValidation for null email, got %v", err)
	}
}

func TestValidateForWriteStrictRejectsUnknownField(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	doc := bson.NewDocument().
		Set("_id", bson.Int32(1)).
		Set("email", bson.String("x@y")).
		Set("nickname", bson.String("zz"))
	if err := m.ValidateForWrite("people", doc, catalog.ValidationStrict); !errors.Is(err, bson.ErrSchemaValidation) {
		t.Fatalf("expected SchemaValidation for unknown field, got %v", err)
	}
}

func TestValidateForWriteStrictAllowsReservedFields(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	doc := bson.NewDocument().
		Set("_id", bson.Int32(1)).
		Set("email", bson.String("x@y")).
		Set("_collection", bson.String("people")).
		Set("_isLargeDocument", bson.False)
	if err := m.ValidateForWrite("people", doc, catalog.ValidationStrict); err != nil {
		t.Fatalf("expected reserved fields to always be allowed, got %v", err)
	}
}

func TestValidateForWriteStrictRejectsKindMismatch(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	doc := bson.NewDocument().
		Set("_id", bson.Int32(1)).
		Set("email", bson.Int32(42))
	if err := m.ValidateForWrite("people", doc, catalog.ValidationStrict); !errors.Is(err, bson.ErrSchemaValidation) {
		t.Fatalf("expected SchemaValidation for kind mismatch, got %v", err)
	}
}

func TestValidateForWriteStrictAcceptsWellFormedDocument(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	doc := bson.NewDocument().
		Set("_id", bson.Int32(1)).
		Set("email", bson.String("x@y"))
	if err := m.ValidateForWrite("people", doc, catalog.ValidationStrict); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

// TestValidationMonotonicity checks that any document accepted by Strict
// is also accepted by Loose and None, for both a valid and an invalid
// document with respect to the required-field rule.
func TestValidationMonotonicity(t *testing.T) {
	m := newManagerWithEmailSchema(t)
	docs := []*bson.Document{
		bson.NewDocument().Set("_id", bson.Int32(1)).Set("email", bson.String("x@y")),
	}
	for _, doc := range docs {
		strictErr := m.ValidateForWrite("people", doc, catalog.ValidationStrict)
		if strictErr != nil {
			continue
		}
		if err := m.ValidateForWrite("people", doc, catalog.ValidationLoose); err != nil {
			t.Fatalf("Strict accepted but Loose rejected: %v", err)
		}
		if err := m.ValidateForWrite("people", doc, catalog.ValidationNone); err != nil {
			t.Fatalf("Strict accepted but None rejected: %v", err)
		}
	}
}

func TestValidateForWriteUnknownTableReturnsNotFound(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	doc := bson.NewDocument().Set("_id", bson.Int32(1))
	if err := m.ValidateForWrite("ghosts", doc, catalog.ValidationLoose); !errors.Is(err, bson.ErrNotFound) {
		t.Fatalf("expected NotFound for unregistered table, got %v", err)
	}
}
