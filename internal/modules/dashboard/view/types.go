package view

import "time"

// Stat is a labelled headline value.
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// QuickAction is a one-tap response button.
type QuickAction struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// Alert is a recent detection.
type Alert struct {
	Kind       string `yaml:"kind"`
	Confidence int    `yaml:"confidence"`
	Title      string `yaml:"title"`
	Time       string `yaml:"time"`
}

// DeviceGroup summarises a class of devices.
type DeviceGroup struct {
	Title  string `yaml:"title"`
	Status string `yaml:"status"`
	Items  []Stat `yaml:"items"`
}

// Link is one uplink of the field gateway.
type Link struct {
	Label   string `yaml:"label"`
	Value   string `yaml:"value"`
	Percent int    `yaml:"percent"`
}

// Camera is one camera feed.
type Camera struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Zone        string `yaml:"zone"`
	Resolution  string `yaml:"resolution"`
	Bitrate     string `yaml:"bitrate"`
	StreamLabel string `yaml:"stream_label"`
	Online      bool   `yaml:"online"`
	LastSeen    string `yaml:"last_seen"`
	Favorite    bool   `yaml:"favorite"`
}

// KPI is a report headline with its change over the period.
type KPI struct {
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Change   string `yaml:"change"`
	Positive bool   `yaml:"positive"`
}

// Count is one slice of the detection distribution.
type Count struct {
	Label string `yaml:"label"`
	Count int    `yaml:"count"`
}

// Note is a titled remark (zones, insights).
type Note struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Report is the weekly summary.
type Report struct {
	Period       string  `yaml:"period"`
	KPIs         []KPI   `yaml:"kpis"`
	Distribution []Count `yaml:"distribution"`
	Zones        []Note  `yaml:"zones"`
	Insights     []Note  `yaml:"insights"`
}

// Fixture is the mock farm the dashboards display.
type Fixture struct {
	Status       []Stat        `yaml:"status"`
	QuickActions []QuickAction `yaml:"quick_actions"`
	Alerts       []Alert       `yaml:"alerts"`
	Devices      []DeviceGroup `yaml:"devices"`
	Network      []Link        `yaml:"network"`
	Cameras      []Camera      `yaml:"cameras"`
	Report       Report        `yaml:"report"`
}

// Activity is a recent account event shown on the home page.
type Activity struct {
	What  string
	Email string
	At    time.Time
}
