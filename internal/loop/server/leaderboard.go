package server

import (
	"cmp"
	"slices"
)

// leaderboard keeps each client's best score.
// It is owned by the lobby goroutine and not safe for concurrent use.
type leaderboard struct {
	best map[int]TopScoreEntry
}

func newLeaderboard() *leaderboard {
	return &leaderboard{best: make(map[int]TopScoreEntry)}
}

// report records a finished game. It returns the client's 1-based rank when the
// score improved its best, or 0 when the score did not count.
func (l *leaderboard) report(clientID int, username string, score int) int {
	prev, ok := l.best[clientID]
	if ok && score <= prev.Score {
		return 0
	}
	l.best[clientID] = TopScoreEntry{Username: username, Score: score, clientID: clientID}
	return l.rank(clientID)
}

// rank returns the 1-based position of a client, or 0 if it has no entry.
func (l *leaderboard) rank(clientID int) int {
	entry, ok := l.best[clientID]
	if !ok {
		return 0
	}
	rank := 1
	for _, other := range l.best {
		if compareEntries(other, entry) < 0 {
			rank++
		}
	}
	return rank
}

// top returns up to n entries ordered by score descending, then by client id.
func (l *leaderboard) top(n int) []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(l.best))
	for _, e := range l.best {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, compareEntries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// compareEntries orders higher scores first and earlier clients first on ties.
func compareEntries(a, b TopScoreEntry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.clientID, b.clientID)
}
