package db

import (
	"log"
)

// createTables 如果数据库中不存在必要的表，则创建它们
func createTables() {
	// 用于创建 'submissions' 表的 SQL 语句
	createSubmissionsTableSQL := `
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		author_id TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		temp_emoji_id TEXT NOT NULL DEFAULT '',
		suggestion_queue_msg TEXT NOT NULL DEFAULT '',
		council_queue_msg TEXT NOT NULL DEFAULT '',
		approval_queue_msg TEXT NOT NULL DEFAULT '',
		yay INTEGER NOT NULL DEFAULT 0,
		nay INTEGER NOT NULL DEFAULT 0,
		state INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);`

	_, err := DB.Exec(createSubmissionsTableSQL)
	if err != nil {
		log.Fatalf("Failed to create submissions table: %v", err)
	}

	// Secondary lookup indexes for resolving inbound gateway events back to
	// submissions. Only non-terminal rows are ever matched through these.
	createIndexesSQL := `
	CREATE INDEX IF NOT EXISTS idx_submissions_council_msg ON submissions (council_queue_msg);
	CREATE INDEX IF NOT EXISTS idx_submissions_approval_msg ON submissions (approval_queue_msg);`

	_, err = DB.Exec(createIndexesSQL)
	if err != nil {
		log.Fatalf("Failed to create submission indexes: %v", err)
	}

	// 用于顺序 ID 生成的 'id_counter' 表的 SQL 语句
	createIdCounterTableSQL := `
	CREATE TABLE IF NOT EXISTS id_counter (
		counter_name TEXT PRIMARY KEY,
		current_value INTEGER NOT NULL DEFAULT 0
	);`

	_, err = DB.Exec(createIdCounterTableSQL)
	if err != nil {
		log.Fatalf("Failed to create id_counter table: %v", err)
	}

	_, err = DB.Exec(`INSERT OR IGNORE INTO id_counter (counter_name, current_value) VALUES ('submission_id', 0)`)
	if err != nil {
		log.Fatalf("Failed to seed id_counter table: %v", err)
	}

	// 用于创建 'transitions' 审计表的 SQL 语句
	createTransitionsTableSQL := `
	CREATE TABLE IF NOT EXISTS transitions (
		id TEXT PRIMARY KEY,
		submission_id INTEGER NOT NULL,
		from_state INTEGER NOT NULL,
		to_state INTEGER NOT NULL,
		actor TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`

	_, err = DB.Exec(createTransitionsTableSQL)
	if err != nil {
		log.Fatalf("Failed to create transitions table: %v", err)
	}

	log.Println("Database tables initialized successfully.")
}
