package models

import (
	"encoding/json"
	"time"

	"github.com/quylang88/tini-store/core/utility"
)

// Millis là timestamp epoch milliseconds.
// Khi decode chấp nhận cả số (epoch ms) lẫn chuỗi ISO-8601 để tương thích
// với dữ liệu export cũ; khi encode luôn ghi ra số.
type Millis int64

// NowMillis trả về thời điểm hiện tại dạng Millis
func NowMillis() Millis {
	return Millis(time.Now().UnixMilli())
}

// Time chuyển Millis về time.Time
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// MarshalJSON ghi Millis ra số epoch milliseconds
func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(m))
}

// UnmarshalJSON đọc Millis từ số epoch ms hoặc chuỗi ISO-8601
func (m *Millis) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ms, err := utility.ParseFlexibleTime(raw)
	if err != nil {
		return err
	}
	*m = Millis(ms)
	return nil
}
