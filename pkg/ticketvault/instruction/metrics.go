package instruction

import (
	"context"

	"github.com/ticketvault/ticketvault-server/pkg/metrics"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
)

const (
	metricsStructName = "instruction.processor"

	eventInitializedEventName = "EventInitialized"
	enrollmentEventName       = "UserEnrolled"
	ticketClaimedEventName    = "TicketClaimed"
)

func recordEventInitializedEvent(ctx context.Context, eventRecord *event.Record) {
	metrics.RecordEvent(ctx, eventInitializedEventName, map[string]interface{}{
		"event":      eventRecord.Address,
		"creator":    eventRecord.Creator,
		"capacity":   eventRecord.Capacity,
		"ticket_fee": eventRecord.TicketFee,
	})
}

func recordEnrollmentEvent(ctx context.Context, ticketRecord *ticket.Record) {
	metrics.RecordEvent(ctx, enrollmentEventName, map[string]interface{}{
		"event":            ticketRecord.Event,
		"user":             ticketRecord.User,
		"ticket":           ticketRecord.Address,
		"amount_deposited": ticketRecord.AmountDeposited,
		"class":            ticketRecord.Class.String(),
	})
}

func recordTicketClaimedEvent(ctx context.Context, ticketRecord *ticket.Record) {
	metrics.RecordEvent(ctx, ticketClaimedEventName, map[string]interface{}{
		"event":  ticketRecord.Event,
		"user":   ticketRecord.User,
		"ticket": ticketRecord.Address,
	})
}
