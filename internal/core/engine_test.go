package core

import (
	"errors"
	"testing"
)

// recordingStore 记录写入目标的内存Store
type recordingStore struct {
	data    *Table
	target  *Target
	readErr error
	writErr error
}

func (s *recordingStore) Read(target *Target) (*Table, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.data, nil
}

func (s *recordingStore) Write(data *Table, target *Target) error {
	if s.writErr != nil {
		return s.writErr
	}
	s.data = data
	s.target = target
	return nil
}

// newEngineWithStores 用独立注册器构造测试引擎
func newEngineWithStores(t *testing.T, source, dest Store) *Engine {
	t.Helper()

	registry := NewStoreRegistry()
	registry.RegisterStore("mock-source", func(parameter any) (Store, error) {
		return source, nil
	})
	registry.RegisterStore("mock-dest", func(parameter any) (Store, error) {
		return dest, nil
	})

	config := buildJobConfig()
	config.Job.Content[0].Reader.Name = "mock-source"
	config.Job.Content[0].Writer.Name = "mock-dest"
	config.Job.Content[0].Writer.Target = Target{Table: "t"}

	engine := NewEngine(config)
	engine.SetRegistry(registry)
	return engine
}

func TestEngine_Start(t *testing.T) {
	data := NewTable()
	data.AddColumn("id", TypeInt64, []any{int64(1), int64(2)})
	data.AddColumn("name", TypeText, []any{"a", "b"})

	source := &recordingStore{data: data}
	dest := &recordingStore{}

	engine := newEngineWithStores(t, source, dest)
	if err := engine.Init(); err != nil {
		t.Fatalf("Init should succeed, got error: %v", err)
	}
	if err := engine.Start(); err != nil {
		t.Fatalf("Start should succeed, got error: %v", err)
	}

	// 数据原样到达目标
	if dest.data == nil || dest.data.RowCount() != 2 {
		t.Fatal("destination should receive 2 rows")
	}
	if dest.target == nil || dest.target.Table != "t" {
		t.Errorf("destination target = %+v, want table t", dest.target)
	}
}

func TestEngine_Init_UnknownStore(t *testing.T) {
	config := buildJobConfig()
	config.Job.Content[0].Reader.Name = "mock-source"

	engine := NewEngine(config)
	engine.SetRegistry(NewStoreRegistry())

	if err := engine.Init(); err == nil {
		t.Error("Init should fail for unknown store")
	}
}

func TestEngine_Init_EmptyContent(t *testing.T) {
	// 不经过配置验证直接Init也不能崩溃
	engine := NewEngine(&JobConfig{})
	if err := engine.Init(); err == nil {
		t.Error("Init should fail for config without content")
	}

	engine = NewEngine(nil)
	if err := engine.Init(); err == nil {
		t.Error("Init should fail for nil config")
	}
}

func TestEngine_Start_ReadError(t *testing.T) {
	source := &recordingStore{readErr: errors.New("read failed")}
	dest := &recordingStore{}

	engine := newEngineWithStores(t, source, dest)
	if err := engine.Init(); err != nil {
		t.Fatalf("Init should succeed, got error: %v", err)
	}

	if err := engine.Start(); err == nil {
		t.Error("Start should fail when source read fails")
	}
	if dest.data != nil {
		t.Error("destination should not be written when read fails")
	}
}

func TestEngine_Start_WriteError(t *testing.T) {
	data := NewTable()
	data.AddColumn("id", TypeInt64, []any{int64(1)})

	source := &recordingStore{data: data}
	dest := &recordingStore{writErr: errors.New("write failed")}

	engine := newEngineWithStores(t, source, dest)
	if err := engine.Init(); err != nil {
		t.Fatalf("Init should succeed, got error: %v", err)
	}

	if err := engine.Start(); err == nil {
		t.Error("Start should fail when destination write fails")
	}
}
