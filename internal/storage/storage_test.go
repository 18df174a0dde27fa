package storage

import (
	"testing"

	"dataio/internal/core"
	"dataio/internal/storage/file"
	"dataio/internal/storage/relational"
)

func TestRegisterBuiltinStores(t *testing.T) {
	registry := core.NewStoreRegistry()
	RegisterBuiltinStores(registry)

	for _, name := range []string{"file", "postgresql", "mysql", "oracle"} {
		if !registry.HasStore(name) {
			t.Errorf("builtin store %s should be registered", name)
		}
	}
}

func TestRegisterBuiltinStores_CreateFile(t *testing.T) {
	registry := core.NewStoreRegistry()
	RegisterBuiltinStores(registry)

	store, err := registry.CreateStore("file", nil)
	if err != nil {
		t.Fatalf("CreateStore(file) should succeed, got error: %v", err)
	}
	if _, ok := store.(*file.FileStore); !ok {
		t.Errorf("CreateStore(file) = %T, want *file.FileStore", store)
	}
}

func TestRegisterBuiltinStores_DriverBinding(t *testing.T) {
	registry := core.NewStoreRegistry()
	RegisterBuiltinStores(registry)

	// 关系型Store按注册名绑定驱动，参数里无需再指定
	store, err := registry.CreateStore("mysql", map[string]any{
		"host":     "localhost",
		"port":     3306,
		"database": "demo",
	})
	if err != nil {
		t.Fatalf("CreateStore(mysql) should succeed, got error: %v", err)
	}

	rs, ok := store.(*relational.RelationalStore)
	if !ok {
		t.Fatalf("CreateStore(mysql) = %T, want *relational.RelationalStore", store)
	}
	if rs.Parameter.Driver != "mysql" {
		t.Errorf("driver = %s, want mysql", rs.Parameter.Driver)
	}
}

func TestValidateBuiltinStore(t *testing.T) {
	if err := ValidateBuiltinStore("postgresql"); err != nil {
		t.Errorf("postgresql should be builtin, got: %v", err)
	}
	if err := ValidateBuiltinStore("redis"); err == nil {
		t.Error("redis should not be builtin")
	}
}
