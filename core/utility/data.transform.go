package utility

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ToMap chuyển một struct (theo json tags) thành map[string]interface{}.
// Dùng làm cầu nối giữa các model typed và document của persistence gateway.
func ToMap(s interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("json marshal failed: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	return out, nil
}

// FromMap chuyển map[string]interface{} ngược về struct (theo json tags)
func FromMap(m map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json unmarshal failed: %w", err)
	}
	return nil
}

// ParseFlexibleTime parse một giá trị timestamp linh hoạt thành epoch milliseconds.
// Chấp nhận cả hai dạng dữ liệu cũ và mới:
//   - số (epoch milliseconds) - dạng chuẩn hiện tại
//   - chuỗi ISO-8601 (RFC3339 hoặc RFC3339Nano) - dạng export cũ
//   - chuỗi số - phòng dữ liệu export bị stringify
//
// Trả về 0 cho nil/chuỗi rỗng (không phải lỗi - field vắng mặt trong dữ liệu cũ).
func ParseFlexibleTime(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		// JSON numbers decode thành float64
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("timestamp không hợp lệ: %v", v)
		}
		return int64(v), nil
	case string:
		if v == "" {
			return 0, nil
		}
		// Thử ISO-8601 trước
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UnixMilli(), nil
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UnixMilli(), nil
		}
		// Chuỗi số (epoch milliseconds)
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			return ms, nil
		}
		return 0, fmt.Errorf("không thể parse timestamp '%s'", v)
	default:
		return 0, fmt.Errorf("kiểu timestamp không được hỗ trợ: %T", value)
	}
}

// FormatTimeMillis chuyển epoch milliseconds thành chuỗi ISO-8601 (UTC),
// dùng cho hiển thị và export
func FormatTimeMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
