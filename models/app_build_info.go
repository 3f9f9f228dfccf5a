// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// unknown is reported for build metadata the linker did not inject.
const unknown = "N/A"

// AppBuildInfo carries build-time metadata embedded into the binaries through
// linker flags and served by GET /api/version.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"build_date"`
	Commit  string `json:"build_commit"`
}

// NewAppBuildInfo constructs [AppBuildInfo], replacing empty values with "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orUnknown(buildVersion),
		Date:    orUnknown(buildDate),
		Commit:  orUnknown(buildCommit),
	}
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version %s (built %s, commit %s)", a.Version, a.Date, a.Commit)
}

func orUnknown(v string) string {
	if v == "" {
		return unknown
	}
	return v
}
