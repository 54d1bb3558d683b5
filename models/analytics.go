package models

import "time"

// The analytics types below are a schema contract for an external visitor
// analytics pipeline. Nothing in this service ingests or aggregates them.

type DeviceInfo struct {
	UserAgent   string `json:"user_agent"`
	Browser     string `json:"browser"`
	OS          string `json:"os"`
	DeviceType  string `json:"device_type"` // desktop, mobile, tablet
	ScreenWidth int    `json:"screen_width"`
	Language    string `json:"language"`
}

type LocationInfo struct {
	IP       string  `json:"ip"`
	Country  string  `json:"country"`
	City     string  `json:"city"`
	Region   string  `json:"region"`
	Timezone string  `json:"timezone"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type VisitInfo struct {
	Page      string        `json:"page"`
	Title     string        `json:"title"`
	EnteredAt time.Time     `json:"entered_at"`
	Duration  time.Duration `json:"duration"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"` // visitor or operator
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sent_at"`
}

type UserSession struct {
	ID           string        `json:"id"`
	StartedAt    time.Time     `json:"started_at"`
	LastSeenAt   time.Time     `json:"last_seen_at"`
	Referrer     string        `json:"referrer"`
	Device       DeviceInfo    `json:"device"`
	Location     LocationInfo  `json:"location"`
	Visits       []VisitInfo   `json:"visits"`
	ChatMessages []ChatMessage `json:"chat_messages"`
	IsOnline     bool          `json:"is_online"`
}

// AnalyticsData is the rollup shape the analytics panel renders.
type AnalyticsData struct {
	TotalVisitors  int            `json:"total_visitors"`
	OnlineVisitors int            `json:"online_visitors"`
	TotalPageViews int            `json:"total_page_views"`
	ByCountry      map[string]int `json:"by_country"`
	ByCity         map[string]int `json:"by_city"`
	ByDevice       map[string]int `json:"by_device"`
	ByReferrer     map[string]int `json:"by_referrer"`
	ByHour         map[int]int    `json:"by_hour"`
	Sessions       []UserSession  `json:"sessions"`
}
