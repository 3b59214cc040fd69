package mqtt

import "fmt"

// Internal event-bus topics. internal/engine publishes these after a write
// succeeds and after it has run the learning update and cache recompute
// inline. Nothing in this module subscribes to the event topics; the only
// subscriber is cmd/bayscan-api's websocket relay on the score-updated
// topics.
const (
	TopicCatchEvent       = "bayscan/events/catch"
	TopicBaitLogEvent     = "bayscan/events/bait"
	TopicPredatorLogEvent = "bayscan/events/predator"
	TopicScoreUpdated     = "bayscan/scores/updated"
	TopicSchedulerTrigger = "bayscan/scheduler/trigger/+"
)

// SchedulerTriggerTopic constructs a manual-trigger topic for a named job,
// mirroring the teacher's trigger-topic convention for on-demand agent runs.
func SchedulerTriggerTopic(job string) string {
	return fmt.Sprintf("bayscan/scheduler/trigger/%s", job)
}

// ScoreUpdatedTopic constructs a per-(species,zone) score update topic used
// by the websocket relay in cmd/bayscan-api.
func ScoreUpdatedTopic(species, zoneID string) string {
	return fmt.Sprintf("bayscan/scores/updated/%s/%s", species, zoneID)
}
