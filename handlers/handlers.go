package handlers

import (
	"taxledger/compliance"
)

var (
	Core *compliance.Compliance
)

func InitHandlers(core *compliance.Compliance) {
	Core = core
}
