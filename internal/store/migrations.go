package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL CHECK(role IN ('ADMIN', 'TEAM_LEAD', 'ACCOUNTANT', 'INTERN')),
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS clients (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	category_id   TEXT NOT NULL DEFAULT '',
	client_id     TEXT NOT NULL DEFAULT '',
	period_month  INTEGER,
	period_year   INTEGER,
	priority      TEXT NOT NULL DEFAULT 'MEDIUM',
	status        TEXT NOT NULL DEFAULT 'QUEUED'
		CHECK(status IN ('QUEUED', 'IN_PROGRESS', 'IN_REVIEW', 'DONE')),
	due_date      DATETIME,
	created_by_id TEXT NOT NULL,
	created_at    DATETIME NOT NULL,
	start_time    DATETIME,
	end_time      DATETIME
);

CREATE TABLE IF NOT EXISTS task_assignments (
	task_id  TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	user_id  TEXT NOT NULL,
	is_owner INTEGER NOT NULL DEFAULT 0 CHECK(is_owner IN (0, 1)),
	PRIMARY KEY (task_id, user_id)
);

CREATE TABLE IF NOT EXISTS task_status_logs (
	id            TEXT PRIMARY KEY,
	task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	old_status    TEXT NOT NULL,
	new_status    TEXT NOT NULL,
	changed_by_id TEXT NOT NULL,
	note          TEXT NOT NULL DEFAULT '',
	changed_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS subtasks (
	id              TEXT PRIMARY KEY,
	task_id         TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	title           TEXT NOT NULL,
	is_completed    INTEGER NOT NULL DEFAULT 0 CHECK(is_completed IN (0, 1)),
	completed_at    DATETIME,
	completed_by_id TEXT,
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	type       TEXT NOT NULL,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	task_id    TEXT NOT NULL DEFAULT '',
	is_read    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_client_id ON tasks(client_id);
CREATE INDEX IF NOT EXISTS idx_tasks_category_id ON tasks(category_id);
CREATE INDEX IF NOT EXISTS idx_tasks_created_by ON tasks(created_by_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_status_logs_task_id ON task_status_logs(task_id);
CREATE INDEX IF NOT EXISTS idx_assignments_user_id ON task_assignments(user_id);
CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);
CREATE INDEX IF NOT EXISTS idx_comments_task_id ON comments(task_id);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(is_read);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS task_templates (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	category_id   TEXT NOT NULL DEFAULT '',
	priority      TEXT NOT NULL DEFAULT 'MEDIUM',
	subtasks      TEXT NOT NULL DEFAULT '[]',
	created_by_id TEXT NOT NULL,
	created_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS recurring_tasks (
	id            TEXT PRIMARY KEY,
	template_id   TEXT,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	category_id   TEXT NOT NULL DEFAULT '',
	client_id     TEXT NOT NULL DEFAULT '',
	priority      TEXT NOT NULL DEFAULT 'MEDIUM',
	frequency     TEXT NOT NULL CHECK(frequency IN ('DAILY', 'WEEKLY', 'MONTHLY', 'YEARLY')),
	day_of_month  INTEGER,
	day_of_week   INTEGER,
	next_run_date DATETIME NOT NULL,
	is_active     INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	assignee_ids  TEXT NOT NULL DEFAULT '[]',
	created_by_id TEXT NOT NULL,
	created_at    DATETIME NOT NULL
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
