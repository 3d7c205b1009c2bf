package catalog

import "github.com/j4587698/tinydb/bson"

// Collection is the minimal persistence surface the catalog bootstraps
// itself on top of. A collection whose name begins with "__" is a system
// collection and bypasses schema validation entirely; `__sys_catalog`
// itself is one such collection.
type Collection interface {
	FindByID(id bson.Value) (*bson.Document, bool, error)
	Insert(doc *bson.Document) error
	Update(doc *bson.Document) error
	Delete(id bson.Value) error
	FindAll() ([]*bson.Document, error)
}
