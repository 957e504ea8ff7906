// Package models holds the HTTP API request and response bodies.
package models

// HealthData is the health check body.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// VersionData mirrors version.Info.
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"windows/amd64" doc:"Target OS and architecture"`
}

type VersionResponse struct {
	Body VersionData
}

// DeviceInfo is one entry of the aggregated device list.
type DeviceInfo struct {
	ID        string `json:"id" example:"{asio-out}" doc:"Stable device identifier"`
	Name      string `json:"name" example:"ASIO Out" doc:"Display name"`
	Backend   string `json:"backend" example:"asio" enum:"asio,wasapi" doc:"Backend providing the device"`
	Direction string `json:"direction" example:"render" enum:"render,capture" doc:"Data flow direction"`
	Driver    string `json:"driver,omitempty" example:"Focusrite USB ASIO" doc:"Configured driver name (driver backend only)"`
	Channel   *uint  `json:"channel,omitempty" example:"0" doc:"Configured input channel, absent for the backend default"`
	Installed bool   `json:"installed" doc:"Whether the driver was found on this machine"`
	Default   bool   `json:"default" doc:"Whether the OS marks this device as default"`
}

type DeviceData struct {
	Devices  []DeviceInfo `json:"devices" doc:"Devices in backend registration order"`
	Backends []string     `json:"backends" example:"[\"asio\",\"wasapi\"]" doc:"Registered backends"`
	Count    int          `json:"count" example:"5" doc:"Number of devices"`
	Errors   []string     `json:"errors,omitempty" doc:"Backends that failed to list and were skipped"`
}

type DeviceResponse struct {
	Body DeviceData
}

type DeviceListInput struct {
	Backend   string `query:"backend" enum:"asio,wasapi" doc:"Only devices from this backend"`
	Direction string `query:"direction" enum:"render,capture" doc:"Only devices with this direction"`
}

type DeviceGetInput struct {
	ID string `path:"id" example:"{asio-in-0}" doc:"Device identifier"`
}

type DeviceGetResponse struct {
	Body DeviceInfo
}

// EndpointData is a configured driver endpoint.
type EndpointData struct {
	Driver  string `json:"driver" example:"Focusrite USB ASIO" doc:"Driver name, empty when unconfigured"`
	Channel *uint  `json:"channel,omitempty" example:"1" doc:"Input channel, absent for the backend default"`
}

type DiagnosticData struct {
	Line    int    `json:"line" example:"6" doc:"1-based line number"`
	Section string `json:"section" example:"Asio.Input.0" doc:"Section in effect at that line"`
	Key     string `json:"key,omitempty" example:"channel" doc:"Key involved, if any"`
	Kind    string `json:"kind" example:"invalid_value" enum:"malformed_section,invalid_value" doc:"Problem kind"`
	Message string `json:"message" doc:"Logged message"`
}

type ConfigData struct {
	Path           string           `json:"path" example:"C:\\Games\\RS_ASIO.ini" doc:"INI file location"`
	Found          bool             `json:"found" doc:"Whether the file existed; defaults are shown otherwise"`
	EnableAsio     bool             `json:"enable_asio" doc:"Driver backend enabled"`
	EnableWasapi   bool             `json:"enable_wasapi" doc:"System backend enabled"`
	BufferSizeMode string           `json:"buffer_size_mode" example:"driver" enum:"driver,host" doc:"Buffer size negotiation"`
	Output         EndpointData     `json:"output" doc:"Output endpoint"`
	Inputs         []EndpointData   `json:"inputs" doc:"Input slots 0 and 1"`
	Diagnostics    []DiagnosticData `json:"diagnostics" doc:"Problems logged while parsing"`
}

type ConfigResponse struct {
	Body ConfigData
}

type DriverInfo struct {
	Name        string `json:"name" example:"Focusrite USB ASIO" doc:"Driver name"`
	ID          string `json:"id,omitempty" example:"{5C2D1B8F-...}" doc:"Registry CLSID or ALSA card id"`
	Description string `json:"description,omitempty" doc:"Driver description"`
}

type DriverData struct {
	Drivers []DriverInfo `json:"drivers" doc:"Installed hardware drivers"`
	Count   int          `json:"count" example:"2" doc:"Number of drivers"`
}

type DriverResponse struct {
	Body DriverData
}

type LogEntry struct {
	Timestamp  string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Entry time"`
	Level      string         `json:"level" example:"error" doc:"Level"`
	Module     string         `json:"module,omitempty" example:"config" doc:"Logging module"`
	Message    string         `json:"message" doc:"Message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

type LogsInput struct {
	Limit int    `query:"limit" minimum:"0" maximum:"1000" default:"100" doc:"Maximum entries, newest last"`
	Level string `query:"level" enum:"debug,info,warn,error" doc:"Minimum level"`
}

type LogsData struct {
	Entries []LogEntry `json:"entries" doc:"Recent log entries, oldest first"`
	Count   int        `json:"count" doc:"Number of entries"`
}

type LogsResponse struct {
	Body LogsData
}
