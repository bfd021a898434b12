// Package analytics sends product analytics events to Segment. The client
// travels in the request context; a process without one (worker, tests)
// simply tracks nothing.
package analytics

import (
	"context"

	segment "github.com/segmentio/analytics-go/v3"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

func TrackEvent(
	ctx context.Context,
	event models.AnalyticsEvent,
	organizationId string,
	properties map[string]any,
) {
	client, ok := utils.SegmentClientFromContext(ctx)
	if !ok {
		return
	}

	props := segment.NewProperties()
	for key, value := range properties {
		props = props.Set(key, value)
	}

	err := client.Enqueue(segment.Track{
		UserId:     organizationId,
		Event:      string(event),
		Properties: props,
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not enqueue analytics event", "event", event, "error", err.Error())
	}
}
