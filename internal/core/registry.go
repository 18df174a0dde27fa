package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// StoreRegistry 存储处理器注册器
type StoreRegistry struct {
	stores map[string]StoreFactory
	mutex  sync.RWMutex
}

// NewStoreRegistry 创建新的存储处理器注册器
func NewStoreRegistry() *StoreRegistry {
	return &StoreRegistry{
		stores: make(map[string]StoreFactory),
	}
}

// RegisterStore 注册Store工厂函数
func (r *StoreRegistry) RegisterStore(name string, factory StoreFactory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.stores[name] = factory
}

// CreateStore 创建Store实例
func (r *StoreRegistry) CreateStore(name string, parameter any) (Store, error) {
	r.mutex.RLock()
	factory, exists := r.stores[name]
	r.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("未找到Store插件: %s", name)
	}

	return factory(parameter)
}

// GetRegisteredStores 获取已注册的Store名称列表
func (r *StoreRegistry) GetRegisteredStores() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	return names
}

// HasStore 检查是否存在指定的Store插件
func (r *StoreRegistry) HasStore(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exists := r.stores[name]
	return exists
}

// Clear 清空所有注册的插件（主要用于测试）
func (r *StoreRegistry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.stores = make(map[string]StoreFactory)
}

// ParameterConverter 参数转换器，用于将any类型转换为具体的参数类型
type ParameterConverter struct{}

// ConvertParameter 将any类型的参数转换为指定类型的参数
func (c *ParameterConverter) ConvertParameter(parameter any, target any) error {
	// 使用JSON编解码进行类型转换
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(parameter); err != nil {
		return fmt.Errorf("参数编码失败: %v", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("参数解码失败: %v", err)
	}

	return nil
}

// CreateStoreFactory 创建Store工厂函数的辅助方法
func CreateStoreFactory[T any](createFunc func(*T) Store) StoreFactory {
	converter := &ParameterConverter{}
	return func(parameter any) (Store, error) {
		var param T
		if err := converter.ConvertParameter(parameter, &param); err != nil {
			return nil, err
		}
		return createFunc(&param), nil
	}
}

// 全局插件注册器实例
var DefaultRegistry = NewStoreRegistry()

// RegisterStore 向全局注册器注册Store工厂函数
func RegisterStore(name string, factory StoreFactory) {
	DefaultRegistry.RegisterStore(name, factory)
}

// CreateStore 从全局注册器创建Store实例
func CreateStore(name string, parameter any) (Store, error) {
	return DefaultRegistry.CreateStore(name, parameter)
}
