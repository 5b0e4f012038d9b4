package database

// Processed-event queries
const (
	insertProcessedEventQuery = `
		INSERT OR IGNORE INTO processed_events (event_id) VALUES (?)
	`

	selectProcessedEventQuery = `
		SELECT 1 FROM processed_events WHERE event_id = ?
	`

	deleteOldProcessedEventsQuery = `
		DELETE FROM processed_events
		WHERE processed_at < datetime('now', '-' || ? || ' days')
	`

	countProcessedEventsQuery = `
		SELECT COUNT(*) FROM processed_events
	`
)
