package bootstrap

import (
	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/slot"
	"coachdesk/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewSlotWindow,
		NewRedemptionPolicy,
	),
)

// NewSlotWindow fails startup on a bad SLOT_* setting rather than serving an empty calendar.
func NewSlotWindow(cfg config.Config) (slot.Window, error) {
	return slot.NewWindow(cfg.Slots.TimeZone, cfg.Slots.DayStart, cfg.Slots.DayEnd, cfg.Slots.Step)
}

func NewRedemptionPolicy(cfg config.Config) redemption.Policy {
	return redemption.Policy{
		DownloadTokenTTL:      cfg.Redemption.DownloadTokenTTL,
		CallTokenTTL:          cfg.Redemption.CallTokenTTL,
		DownloadCredentialTTL: cfg.Redemption.DownloadCredentialTTL,
		CallCredentialTTL:     cfg.Redemption.CallCredentialTTL,
	}
}
