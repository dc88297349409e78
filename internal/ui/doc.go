// Package ui contains the Bubble Tea program that hosts the select control.
// Model is the parent controller: it owns no selection or menu state itself
// but routes each message to the component that does.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function (keys, mouse, focus, window size, source events).
//   - Navigation keys go to the keyboard state machine in internal/ui/state;
//     other printable keys edit the option filter when filtering is enabled.
//   - Clicks on the display row toggle the menu, clicks on an option toggle
//     it, and wheel events scroll the viewport and signal the option feed.
//     Clicks outside the rendered rows reach the menu through the outside
//     observer and close it.
//
// State ownership:
//   - internal/selection owns the selection and is the only emitter of
//     input/add/remove events. The model forwards them, together with
//     focus/blur, to the host through internal/ui/command.
//   - internal/ui/state owns menu open/closed state, the focused index and
//     the revealed option window.
//
// Deferred work:
//   - Components schedule settled-state checks on the model's queue. Each
//     update that leaves work queued returns a command whose drainMsg runs
//     it on the next turn, after Bubble Tea has rendered the view.
package ui
