// Package overlay shows one animated, self-dismissing notification at a time.
//
// A Slot moves each entry through Empty, Entering, Visible, Exiting and back
// to Empty. Entering and Exiting are tweens of a progress value between 0
// and 1, ticked on the scheduler every FrameInterval. A visible entry starts
// an auto-dismiss timer. Showing a new entry while another one occupies the
// slot replaces it: the old entry is closed at once with ReasonReplaced and
// its OnClosed runs before the new entry starts entering.
//
// # Usage
//
//	slot := overlay.NewSlot[string](sched,
//	    overlay.WithSurface[string](terminalSurface),
//	)
//	slot.Show(overlay.Entry[string]{
//	    Value:    "Saved",
//	    OnTap:    func(v string) { openDetails(v) },
//	    OnClosed: func(r overlay.CloseReason) { log.Println("closed:", r) },
//	})
//
// Slot implements the notification hook of delivery.Presenter, and
// NewPresenter combines it with a presenter for the text slots:
//
//	p := overlay.NewPresenter[Toast](banner, slot)
//	bridge := delivery.NewBridge(sched, model, p)
//
// All Slot methods must be called on the scheduler's execution context.
// Hooks (OnTap, OnClosed and Surface methods) that panic are recovered
// and logged.
package overlay
