package store

const Schema = `
CREATE TABLE IF NOT EXISTS albums (
	chat_id INTEGER NOT NULL,
	album TEXT NOT NULL,
	artist TEXT NOT NULL,
	minutes REAL NOT NULL DEFAULT 0,
	release_date TEXT,
	musicbrainz_id TEXT,
	tracks TEXT,  -- JSON array
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (chat_id, album, artist)
);

CREATE INDEX IF NOT EXISTS idx_albums_chat ON albums(chat_id);

CREATE TABLE IF NOT EXISTS notifications (
	key TEXT PRIMARY KEY,
	sent_on TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	data BLOB,
	expires_at DATETIME
);
`
