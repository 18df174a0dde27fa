package relational

import (
	"strconv"
	"strings"

	"dataio/internal/core"
	"dataio/internal/database"
)

// columnTypeMapping 各数据库方言下列类型到SQL类型的映射。
// 映射是全量的，未识别的类型一律落到文本类型。
var columnTypeMapping = map[string]map[core.ColumnType]string{
	database.DriverPostgreSQL: {
		core.TypeText:      "TEXT",
		core.TypeInt64:     "BIGINT",
		core.TypeInt32:     "INT",
		core.TypeFloat64:   "DOUBLE PRECISION",
		core.TypeFloat32:   "FLOAT",
		core.TypeTimestamp: "TIMESTAMP",
	},
	database.DriverMySQL: {
		core.TypeText:      "TEXT",
		core.TypeInt64:     "BIGINT",
		core.TypeInt32:     "INT",
		core.TypeFloat64:   "DOUBLE",
		core.TypeFloat32:   "FLOAT",
		core.TypeTimestamp: "DATETIME",
	},
	database.DriverOracle: {
		core.TypeText:      "VARCHAR2(4000)",
		core.TypeInt64:     "NUMBER(19)",
		core.TypeInt32:     "NUMBER(10)",
		core.TypeFloat64:   "BINARY_DOUBLE",
		core.TypeFloat32:   "BINARY_FLOAT",
		core.TypeTimestamp: "TIMESTAMP",
	},
}

// SQLType 获取列类型在指定方言下的SQL类型名。
// 未知方言按PostgreSQL处理，未知列类型按文本处理。
func SQLType(driver string, typ core.ColumnType) string {
	mapping, ok := columnTypeMapping[driver]
	if !ok {
		mapping = columnTypeMapping[database.DriverPostgreSQL]
	}
	if sqlType, ok := mapping[typ]; ok {
		return sqlType
	}
	return mapping[core.TypeText]
}

// columnTypeOf 把驱动报告的数据库类型名映射回列类型，用于读取路径
func columnTypeOf(dbType string) core.ColumnType {
	switch strings.ToUpper(dbType) {
	case "INT8", "BIGINT":
		return core.TypeInt64
	case "INT", "INT4", "INTEGER", "SMALLINT", "INT2", "MEDIUMINT", "TINYINT":
		return core.TypeInt32
	case "FLOAT8", "DOUBLE", "DOUBLE PRECISION", "BINARY_DOUBLE", "NUMERIC", "DECIMAL", "NUMBER":
		return core.TypeFloat64
	case "FLOAT4", "FLOAT", "REAL", "BINARY_FLOAT":
		return core.TypeFloat32
	case "TIMESTAMP", "TIMESTAMPTZ", "DATETIME", "DATE":
		return core.TypeTimestamp
	default:
		return core.TypeText
	}
}

// placeholder 获取指定方言下第i个(从1开始)参数占位符
func placeholder(driver string, i int) string {
	switch driver {
	case database.DriverPostgreSQL:
		return "$" + strconv.Itoa(i)
	case database.DriverOracle:
		return ":" + strconv.Itoa(i)
	default:
		return "?"
	}
}
