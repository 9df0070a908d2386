package db

// SchemaSQL is the complete schema for fresh deck stores. It is the single
// source of truth: the sqlite adapter tests open ":memory:" databases with
// it, so any column the adapter references but the schema lacks fails
// immediately with "no such column".
const SchemaSQL = `
-- Boards (roots of the column/card tree)
CREATE TABLE IF NOT EXISTS boards (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

-- Columns (ordered per board via position)
CREATE TABLE IF NOT EXISTS columns (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	title TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id, position);

-- Cards (ordered per column via position)
CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	column_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (column_id) REFERENCES columns(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id, position);

-- Tags (global, board-independent)
CREATE TABLE IF NOT EXISTS tags (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	color TEXT,
	created_at DATETIME NOT NULL
);

-- Card/tag associations
CREATE TABLE IF NOT EXISTS card_tags (
	card_id TEXT NOT NULL,
	tag_id TEXT NOT NULL,
	PRIMARY KEY (card_id, tag_id),
	FOREIGN KEY (card_id) REFERENCES cards(id) ON DELETE CASCADE,
	FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
);
`
