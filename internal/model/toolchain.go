package model

// Version of the find-msvc binary.
const Version = "0.3.0"

// Environment variable names emitted in Result.Environment.
const (
	EnvVCToolsInstallDir    = "VCToolsInstallDir"
	EnvVCToolsVersion       = "VCToolsVersion"
	EnvWindowsSdkDir        = "WindowsSdkDir"
	EnvWindowsSDKLibVersion = "WindowsSDKLibVersion"
	EnvWindowsSDKVersion    = "WindowsSDKVersion"
	EnvWindowsSdkBinPath    = "WindowsSdkBinPath"
	EnvWindowsSdkVerBinPath = "WindowsSdkVerBinPath"
	EnvInclude              = "INCLUDE"
)

// Installation is a single record reported by vswhere.
type Installation struct {
	InstanceID          string `json:"instanceId"`
	InstallationPath    string `json:"installationPath"`
	InstallationVersion string `json:"installationVersion"`
	DisplayName         string `json:"displayName"`
	ProductID           string `json:"productId"`
	IsPrerelease        bool   `json:"isPrerelease"`
}

// SDK holds the raw Windows SDK values read from the registry.
type SDK struct {
	InstallationFolder string // e.g. C:\Program Files (x86)\Windows Kits\10\
	ProductVersion     string // e.g. 10.0.22621, without the trailing component
}

// Environment maps environment variable names to values.
type Environment map[string]string

// Result is the JSON document printed on success. Fields are declared in
// key order so the encoded object is sorted.
type Result struct {
	Environment     Environment `json:"environment"`
	VCIncludeDirs   []string    `json:"vc_include_dirs"`
	VCToolsDir      string      `json:"vc_tools_dir"`
	VCToolsVersion  string      `json:"vc_tools_version"`
	VSInstallDir    string      `json:"vs_install_dir"`
	WinSDKBin       string      `json:"winsdk_bin"`
	WinSDKDirectory string      `json:"winsdk_directory"`
	WinSDKVersion   string      `json:"winsdk_version"`
}

// Discovery is everything found during one run. Only Result is printed in
// JSON mode; the report and TUI also show the raw inputs.
type Discovery struct {
	Installation Installation
	SDK          SDK
	Result       Result
	Candidates   []string // Include directories before the existence filter
}
