package postgresql

// migrations returns the ordered schema migrations for the verification
// store.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS deviations (
				id TEXT PRIMARY KEY,
				record_id TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				approving_authorities TEXT[] NOT NULL DEFAULT '{}',
				decision TEXT NOT NULL DEFAULT 'pending',
				decision_actor_id TEXT,
				decision_remark TEXT,
				decided_at TIMESTAMP WITH TIME ZONE,
				mitigant_ref TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_deviations_record_id ON deviations (record_id);
			CREATE INDEX IF NOT EXISTS idx_deviations_decision ON deviations (decision);
		`,
		2: `
			CREATE TABLE IF NOT EXISTS verification_results (
				id TEXT PRIMARY KEY,
				record_id TEXT NOT NULL,
				integration TEXT NOT NULL,
				action TEXT NOT NULL DEFAULT '',
				kind TEXT NOT NULL,
				message TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_verification_results_record_id ON verification_results (record_id);
		`,
		3: `
			CREATE TABLE IF NOT EXISTS record_deletions (
				record_id TEXT PRIMARY KEY,
				deleted_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);
		`,
	}
}
