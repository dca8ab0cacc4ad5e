// internal/notification/models.go

package notification

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies what produced an in-app notification
type Type string

const (
	TypeStreakMilestone Type = "streak_milestone"
	TypeRewardRedeemed  Type = "reward_redeemed"
)

// Channel is an out-of-app delivery channel
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Notification is an inbox entry
type Notification struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"-" db:"user_id"`
	Type      Type       `json:"type" db:"type"`
	Title     string     `json:"title" db:"title"`
	Message   string     `json:"message" db:"message"`
	Data      Data       `json:"data" db:"data"`
	IsRead    bool       `json:"isRead" db:"is_read"`
	ReadAt    *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// Data is free-form payload stored as JSONB
type Data map[string]interface{}

func (d *Data) Scan(value interface{}) error {
	if value == nil {
		*d = Data{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Data", value)
	}
	return json.Unmarshal(b, d)
}

func (d Data) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

type Inbox struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unreadCount"`
}

type EmailMessage struct {
	To      string
	Subject string
	Body    string
	HTML    string
}

type SMSMessage struct {
	To      string
	Message string
}

type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}
