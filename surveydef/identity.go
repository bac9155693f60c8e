package surveydef

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
)

// IDKind phân loại một định danh: Pending (sinh ở client) hoặc Persisted (do storage cấp).
type IDKind int

const (
	Pending IDKind = iota
	Persisted
)

func (k IDKind) String() string {
	if k == Persisted {
		return "persisted"
	}
	return "pending"
}

// ID is a tagged identity. The zero value is an anonymous Pending id.
type ID struct {
	kind  IDKind
	value string
}

// NewPendingID returns a process-unique id for an entity storage has not seen yet.
func NewPendingID() ID {
	return ID{kind: Pending, value: uuid.NewString()}
}

// PersistedID wraps an identifier assigned by storage.
func PersistedID(remote string) ID {
	return ID{kind: Persisted, value: remote}
}

func (id ID) Kind() IDKind      { return id.kind }
func (id ID) IsPending() bool   { return id.kind == Pending }
func (id ID) IsPersisted() bool { return id.kind == Persisted }

// Remote trả về id phía storage, rỗng nếu id còn Pending.
func (id ID) Remote() string {
	if id.kind != Persisted {
		return ""
	}
	return id.value
}

func (id ID) String() string {
	return id.kind.String() + ":" + id.value
}

// MarshalJSON ghi id Persisted dưới dạng chuỗi; id Pending không bao giờ ra wire nên ghi null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.kind != Persisted {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = NewPendingID()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = NewPendingID()
			return nil
		}
		*id = PersistedID(s)
		return nil
	}
	// storage có thể trả id dạng số
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseUint(n.String(), 10, 64); err != nil {
		return err
	}
	*id = PersistedID(n.String())
	return nil
}
