// Command tinydbctl is a minimal smoke-test harness for the tinydb
// façade: it loads configuration, opens a file-backed catalog collection,
// registers one sample table, round-trips a document through mapping and
// serialization in memory and through an echo file, and prints the
// table's DDL.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/j4587698/tinydb"
	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/config"
	"github.com/j4587698/tinydb/logger"
)

type widget struct {
	ID     int32 `bson:",id"`
	Name   string
	Active bool
}

// fileSink adapts *os.File to bson.ByteSink (which needs WriteByte) and to
// io.Closer, so bson.Writer's dispose-time close has something to call.
type fileSink struct{ f *os.File }

func (s *fileSink) Write(p []byte) (int, error) { return s.f.Write(p) }

func (s *fileSink) WriteByte(c byte) error {
	_, err := s.f.Write([]byte{c})
	return err
}

func (s *fileSink) Close() error { return s.f.Close() }

func main() {
	if err := run(); err != nil {
		logger.Error("tinydbctl: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("tinydb.yaml")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Configure()
	logger.SetLogLevel(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		return fmt.Errorf("create data path: %w", err)
	}

	store, err := tinydb.OpenFileCollection(filepath.Join(cfg.DataPath, "catalog.bson"))
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	manager := tinydb.NewMetadataManager(store, cfg.ReadOnly)

	if err := manager.EnsureSchema("widget", widget{}); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("registered widget table")

	w := widget{ID: 1, Name: "bolt", Active: true}
	doc, err := tinydb.ToDocument(w)
	if err != nil {
		return fmt.Errorf("encode widget: %w", err)
	}

	data, err := tinydb.SerializeDocument(doc)
	if err != nil {
		return fmt.Errorf("serialize widget: %w", err)
	}
	logger.Debug("serialized widget to %d bytes", len(data))

	back, err := tinydb.DeserializeDocument(data)
	if err != nil {
		return fmt.Errorf("deserialize widget: %w", err)
	}
	readBack, err := tinydb.FromDocument[widget](back)
	if err != nil {
		return fmt.Errorf("decode widget: %w", err)
	}
	fmt.Printf("round-tripped widget: %+v\n", readBack)

	echoPath := filepath.Join(cfg.DataPath, "echo.bson")
	ef, err := os.Create(echoPath)
	if err != nil {
		return fmt.Errorf("create echo file: %w", err)
	}
	defer ef.Close() // no-op once Dispose has already closed it (LeaveOpen=false)
	writer := bson.NewWriter(&fileSink{f: ef}, cfg.LeaveOpen)
	if err := writer.WriteDocument(doc); err != nil {
		return fmt.Errorf("write echo document: %w", err)
	}
	if err := writer.Dispose(); err != nil {
		return fmt.Errorf("dispose writer: %w", err)
	}

	rf, err := os.Open(echoPath)
	if err != nil {
		return fmt.Errorf("open echo file: %w", err)
	}
	defer rf.Close() // no-op once Dispose has already closed it (LeaveOpen=false)
	reader := bson.NewReader(rf, cfg.LeaveOpen)
	echoed, err := reader.ReadDocument()
	if err != nil {
		return fmt.Errorf("read echo document: %w", err)
	}
	if err := reader.Dispose(); err != nil {
		return fmt.Errorf("dispose reader: %w", err)
	}
	logger.Debug("echoed widget id back as %v", echoed.Get(tinydb.KeyID))

	ddl, err := tinydb.DDL(manager, "widget")
	if err != nil {
		return fmt.Errorf("render ddl: %w", err)
	}
	fmt.Println(ddl)
	return nil
}
