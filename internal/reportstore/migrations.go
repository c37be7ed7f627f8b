package reportstore

const schema = `
CREATE TABLE IF NOT EXISTS rows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    benchmark_id TEXT NOT NULL,
    criterion TEXT NOT NULL,
    awarded_points INTEGER NOT NULL,
    max_points INTEGER NOT NULL,
    criterion_notes TEXT,
    model_answer TEXT,
    question_notes TEXT,
    question_timestamp TEXT,
    model_name TEXT,
    provider TEXT,
    model_version TEXT,
    temperature TEXT,
    evaluator TEXT,
    tools_used TEXT,
    utc_timestamp TEXT,
    run_notes TEXT,
    run_id TEXT NOT NULL,
    extra TEXT
);

CREATE INDEX IF NOT EXISTS idx_rows_run_id ON rows(run_id);
CREATE INDEX IF NOT EXISTS idx_rows_benchmark_id ON rows(benchmark_id);
CREATE INDEX IF NOT EXISTS idx_rows_model_name ON rows(model_name);
`
