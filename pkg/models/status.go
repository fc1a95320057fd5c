package models

// ProspectStatus is the lifecycle state of a Prospect. The zero value is
// intentionally invalid — every prospect must be created with SCANNED.
type ProspectStatus string

const (
	StatusScanned      ProspectStatus = "SCANNED"
	StatusScheduled    ProspectStatus = "SCHEDULED"
	StatusTesting      ProspectStatus = "TESTING"
	StatusTested       ProspectStatus = "TESTED"
	StatusScored       ProspectStatus = "SCORED"
	StatusReadyAssets  ProspectStatus = "READY_ASSETS"
	StatusReadyToSend  ProspectStatus = "READY_TO_SEND"
	StatusSentManual   ProspectStatus = "SENT_MANUAL"
)

// IsValid reports whether s is one of the known statuses.
func (s ProspectStatus) IsValid() bool {
	switch s {
	case StatusScanned, StatusScheduled, StatusTesting, StatusTested,
		StatusScored, StatusReadyAssets, StatusReadyToSend, StatusSentManual:
		return true
	default:
		return false
	}
}

// CampaignMode controls how aggressively a campaign's scheduler sweep
// operates.
type CampaignMode string

const (
	ModeDryRun    CampaignMode = "DRY_RUN"
	ModeAutoTest  CampaignMode = "AUTO_TEST"
	ModeSendReady CampaignMode = "SEND_READY"
)

// IsValid reports whether m is a known campaign mode.
func (m CampaignMode) IsValid() bool {
	return m == ModeDryRun || m == ModeAutoTest || m == ModeSendReady
}

// CampaignStatus is whether a campaign is currently eligible for scheduler
// sweeps.
type CampaignStatus string

const (
	CampaignActive CampaignStatus = "active"
	CampaignPaused CampaignStatus = "paused"
)

// AIModel identifies one of the three bundled model adapters.
type AIModel string

const (
	ModelOpenAI    AIModel = "openai"
	ModelAnthropic AIModel = "anthropic"
	ModelGemini    AIModel = "gemini"
)

// IsValid reports whether m is a bundled model identifier.
func (m AIModel) IsValid() bool {
	return m == ModelOpenAI || m == ModelAnthropic || m == ModelGemini
}

// AllModels lists every bundled adapter identifier in a fixed order, used
// wherever "all three models" needs a deterministic iteration order (e.g.
// dry-run sweeps).
func AllModels() []AIModel {
	return []AIModel{ModelOpenAI, ModelAnthropic, ModelGemini}
}
