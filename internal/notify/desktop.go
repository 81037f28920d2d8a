package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Desktop shows platform notifications. Urgent levels use the platform's
// alert sound where available.
type Desktop struct{}

func NewDesktop() *Desktop { return &Desktop{} }

func (d *Desktop) Name() string { return "desktop" }

func (d *Desktop) Dispatch(ctx context.Context, a Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.Level >= 3 {
		return beeep.Alert(a.Title, a.Body, "")
	}
	return beeep.Notify(a.Title, a.Body, "")
}
