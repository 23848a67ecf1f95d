package constants

import "time"

const (
	Version        = `0.1.0`
	AppName        = `dictcheck`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.dictcheck/`

	DefaultNoticeDuration  = 5 * time.Second
	DefaultUnregisterDelay = 100 * time.Millisecond

	// MatchNoticeTitle heads the notice shown when the selection is already
	// recorded in the reference document.
	MatchNoticeTitle = `✅✅ Included ✅✅`
)
