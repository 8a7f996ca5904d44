package enums

// Modal identifies which overlay the UI is currently presenting. At most one
// modal is active at a time.
type Modal string

const (
	ModalNone         Modal = ""
	ModalCart         Modal = "cart"
	ModalQuickView    Modal = "quickview"
	ModalCheckout     Modal = "checkout"
	ModalConfirmation Modal = "confirmation"
	ModalTracking     Modal = "tracking"
)

// String implements fmt.Stringer.
func (m Modal) String() string {
	return string(m)
}
