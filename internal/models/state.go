package models

import (
	"time"
)

type ReportUnitState struct {
	Name    string `json:"name"`
	Timer   string `json:"timer"`
	Service string `json:"service"`
}

type EnvState struct {
	Daemon     bool   `json:"daemon"`
	ListenPort int    `json:"listenPort"`
	Version    string `json:"version"`
	AgentDir   string `json:"agentDir"`
}

/**
 * Snapshot of the externally visible agent state
 * @description
 * - Written to <agent dir>/share/state.json after every processed event
 * - Read back by the status command when the daemon is unreachable
 */
type AgentState struct {
	Status    UnitStatus        `json:"status"`
	OpenPort  int               `json:"openPort,omitempty"`
	Units     []ReportUnitState `json:"units"`
	Env       EnvState          `json:"env"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
