package model

// Action is the ledger event type carried on each transaction record.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionInit Action = "INIT"
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)
