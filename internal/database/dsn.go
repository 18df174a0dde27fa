package database

import (
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"
)

// 支持的数据库驱动类型
const (
	DriverPostgreSQL = "postgresql"
	DriverMySQL      = "mysql"
	DriverOracle     = "oracle"
)

// driverName 获取database/sql使用的驱动名称
func driverName(driver string) (string, error) {
	switch driver {
	case DriverPostgreSQL:
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// buildDSN 根据驱动类型构建连接串
func buildDSN(cfg *Config) (string, error) {
	switch cfg.Driver {
	case DriverPostgreSQL:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.Database,
		), nil
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		), nil
	case DriverOracle:
		return go_ora.BuildUrl(
			cfg.Host,
			cfg.Port,
			cfg.Database,
			cfg.Username,
			cfg.Password,
			nil,
		), nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}
