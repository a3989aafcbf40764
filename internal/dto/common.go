package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// FlexID 兼容数字与数字字符串两种写法的 ID
// 前端下拉框的 value 常以字符串提交
type FlexID uint

// UnmarshalJSON 实现 json.Unmarshaler
func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > math.MaxUint32 {
		return fmt.Errorf("invalid id %q", s)
	}
	*f = FlexID(n)
	return nil
}

// Uint 转为 uint
func (f FlexID) Uint() uint { return uint(f) }

// FlexIDs 转为 []uint
func FlexIDs(ids []FlexID) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Uint())
	}
	return out
}

// Round1 保留一位小数
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// NameRequest 仅含名称的创建/更新请求（院系、课程、学期）
type NameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// SuccessResponse 简单成功标记
type SuccessResponse struct {
	Success bool `json:"success"`
}

// IDName 关联对象引用
type IDName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
