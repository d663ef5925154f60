package storage

// AppendInteraction appends an interaction to the guild history, keeping the
// most recent entries only.
func (s *Storage) AppendInteraction(guildID string, rec InteractionRecord) error {
	return s.update(guildID, func(r *Record) {
		r.History = append(r.History, rec)
		if len(r.History) > historyLimit {
			r.History = r.History[len(r.History)-historyLimit:]
		}
	})
}

// FetchHistory returns the guild history, oldest first.
func (s *Storage) FetchHistory(guildID string) ([]InteractionRecord, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.History, nil
}
