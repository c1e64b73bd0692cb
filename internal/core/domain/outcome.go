package domain

type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeInvalidInput      Outcome = "invalid_input"
	OutcomeNotFound          Outcome = "not_found"
	OutcomeInsufficientStock Outcome = "insufficient_stock"
	OutcomeStorageFault      Outcome = "storage_fault"
	OutcomeRenderFault       Outcome = "render_fault"
)
