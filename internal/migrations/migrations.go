package migrations

// initialSchema creates the processed-event ledger. Event ids are the hex
// ids assigned by the source relay; processed_at is only used for retention
// cleanup, never for dedup decisions.
const initialSchema = `
CREATE TABLE IF NOT EXISTS processed_events (
    event_id     TEXT PRIMARY KEY,
    processed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_processed_events_processed_at
    ON processed_events(processed_at);
`

// GetInitialSchema returns the initial database schema
func GetInitialSchema() string {
	return initialSchema
}
