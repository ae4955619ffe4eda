// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the trial-finder pipeline:
// the raw registry Study record, the patient Intake, the presentation Row,
// and per-stage configuration.
package types

// Study is one raw study record as returned by the ClinicalTrials.gov v2
// API. Records are heterogeneous: fields appear and disappear between
// studies, free-text blocks arrive as plain strings, wrapped objects, or
// lists, and ages come as numbers or strings like "18 Years". The record is
// therefore kept as decoded JSON and projected through internal/normalize
// rather than forced into a rigid struct. Studies are read-only inputs;
// nothing in the pipeline mutates one.
type Study map[string]interface{}

// Protocol returns the protocolSection object, or nil when absent or not an
// object.
func (s Study) Protocol() map[string]interface{} {
	ps, _ := s["protocolSection"].(map[string]interface{})
	return ps
}

// Module returns the named module under protocolSection
// (e.g. "identificationModule"), or nil when absent or malformed.
func (s Study) Module(name string) map[string]interface{} {
	m, _ := s.Protocol()[name].(map[string]interface{})
	return m
}

// NCTID returns the registry identifier, or "" when the record has none.
func (s Study) NCTID() string {
	id, _ := s.Module("identificationModule")["nctId"].(string)
	return id
}

// BriefTitle returns the brief title, or "" when absent.
func (s Study) BriefTitle() string {
	t, _ := s.Module("identificationModule")["briefTitle"].(string)
	return t
}
