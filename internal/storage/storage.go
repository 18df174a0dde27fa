// Package storage 汇集各存储介质的处理器并负责注册
package storage

import (
	"fmt"

	"dataio/internal/core"
	"dataio/internal/database"
	"dataio/internal/storage/file"
	"dataio/internal/storage/relational"
)

// builtinStores 内置Store名称到驱动的映射，file为本地文件存储
var builtinStores = map[string]string{
	"file":       "",
	"postgresql": database.DriverPostgreSQL,
	"mysql":      database.DriverMySQL,
	"oracle":     database.DriverOracle,
}

// ValidateBuiltinStore 验证Store名称是否为内置支持的类型
func ValidateBuiltinStore(name string) error {
	if _, ok := builtinStores[name]; !ok {
		return fmt.Errorf("不支持的Store类型: %s", name)
	}
	return nil
}

// RegisterBuiltinStores 向注册器注册所有内置Store
func RegisterBuiltinStores(registry *core.StoreRegistry) {
	// 本地文件存储
	registry.RegisterStore("file", core.CreateStoreFactory(func(param *file.Parameter) core.Store {
		return file.NewFileStore(param)
	}))

	// 关系型存储，按名称绑定驱动
	for name, driver := range builtinStores {
		if driver == "" {
			continue
		}
		d := driver
		registry.RegisterStore(name, core.CreateStoreFactory(func(param *relational.Parameter) core.Store {
			param.Driver = d
			return relational.NewRelationalStore(param)
		}))
	}
}
