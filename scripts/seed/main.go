// Command seed creates the routine schema and loads a development catalog.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS classes (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
    id         INTEGER PRIMARY KEY,
    classes_id INTEGER NOT NULL REFERENCES classes(id),
    name       TEXT NOT NULL,
    code       TEXT NOT NULL UNIQUE,
    grp_code   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subjects (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    code       TEXT NOT NULL,
    department TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subject_groups (
    grp_id       INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    grp_code     TEXT NOT NULL UNIQUE,
    has_subjects TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS teachers (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    code        TEXT NOT NULL,
    department  TEXT NOT NULL,
    designation TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rooms (
    id                   INTEGER PRIMARY KEY,
    room_no              INTEGER NOT NULL UNIQUE,
    number_of_row        INTEGER NOT NULL,
    number_of_column     INTEGER NOT NULL,
    each_brench_capacity INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS shift_logs (
    id       INTEGER PRIMARY KEY,
    weekends TEXT NOT NULL,
    "start"  TEXT NOT NULL,
    "end"    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS routine_slots (
    id           UUID PRIMARY KEY,
    section_code TEXT NOT NULL,
    day          TEXT NOT NULL,
    period       INTEGER NOT NULL,
    subject_id   INTEGER NOT NULL,
    teacher_id   INTEGER NOT NULL,
    room_id      INTEGER NOT NULL,
    shift_log_id INTEGER NOT NULL,
    UNIQUE (section_code, day, period)
);
`

var seedStatements = []string{
	`INSERT INTO classes (id, name, code) VALUES
	    (11, 'Class 11', 'c11'),
	    (12, 'Class 12', 'c12')
	 ON CONFLICT (id) DO NOTHING`,

	`INSERT INTO sections (id, classes_id, name, code, grp_code) VALUES
	    (1, 11, 'Section A', '11a', 'hsc-sci'),
	    (2, 11, 'Section B', '11b', 'hsc-sci'),
	    (3, 11, 'Section C', '11c', 'hsc-commerces'),
	    (4, 12, 'Section A', '12a', 'hsc-sci'),
	    (5, 12, 'Section B', '12b', 'hsc-arts')
	 ON CONFLICT (id) DO NOTHING`,

	`INSERT INTO subjects (id, name, code, department) VALUES
	    (1, 'Physics', 'phy', 'Physics'),
	    (2, 'Chemistry', 'chem', 'Chemistry'),
	    (3, 'Biology', 'bio', 'Biology'),
	    (4, 'Mathematics', 'math', 'Mathematics'),
	    (5, 'ICT', 'ict', 'ICT'),
	    (6, 'English', 'eng', 'English'),
	    (7, 'Accounting', 'acc', 'Accounting'),
	    (8, 'Economics', 'eco', 'Economics'),
	    (9, 'Civics', 'civ', 'Civics'),
	    (10, 'History', 'hist', 'History')
	 ON CONFLICT (id) DO NOTHING`,

	`INSERT INTO subject_groups (grp_id, name, grp_code, has_subjects) VALUES
	    (1, 'HSC Science', 'hsc-sci', '[1,2,3,4,5,6]'),
	    (2, 'HSC Commerce', 'hsc-commerces', '[4,5,6,7,8]'),
	    (3, 'HSC Arts', 'hsc-arts', '[5,6,8,9,10]')
	 ON CONFLICT (grp_id) DO NOTHING`,

	`INSERT INTO teachers (id, name, code, department, designation) VALUES
	    (1, 'Dr. Rahim Uddin', 't-phy-1', 'Physics', 'c_professor'),
	    (2, 'Selina Akter', 't-phy-2', 'Physics', 'a_lecturer'),
	    (3, 'Dr. Kamal Hossain', 't-chem-1', 'Chemistry', 'c_professor'),
	    (4, 'Nusrat Jahan', 't-chem-2', 'Chemistry', 'a_lecturer'),
	    (5, 'Dr. Farida Yasmin', 't-bio-1', 'Biology', 'c_professor'),
	    (6, 'Tanvir Ahmed', 't-bio-2', 'Biology', 'a_lecturer'),
	    (7, 'Dr. Abdul Karim', 't-math-1', 'Mathematics', 'c_professor'),
	    (8, 'Shamima Nasrin', 't-math-2', 'Mathematics', 'b_asst_professor'),
	    (9, 'Rafiq Islam', 't-ict-1', 'ICT', 'b_asst_professor'),
	    (10, 'Maliha Chowdhury', 't-eng-1', 'English', 'b_asst_professor'),
	    (11, 'Jahangir Alam', 't-acc-1', 'Accounting', 'b_asst_professor'),
	    (12, 'Sharmin Sultana', 't-eco-1', 'Economics', 'a_lecturer'),
	    (13, 'Habibur Rahman', 't-civ-1', 'Civics', 'a_lecturer'),
	    (14, 'Dilara Begum', 't-hist-1', 'History', 'a_lecturer')
	 ON CONFLICT (id) DO NOTHING`,

	`INSERT INTO rooms (id, room_no, number_of_row, number_of_column, each_brench_capacity) VALUES
	    (1, 101, 5, 4, 3),
	    (2, 102, 5, 4, 3),
	    (3, 103, 6, 4, 2),
	    (4, 201, 5, 5, 2),
	    (5, 202, 6, 5, 2),
	    (6, 203, 5, 4, 3)
	 ON CONFLICT (id) DO NOTHING`,

	`INSERT INTO shift_logs (id, weekends, "start", "end") VALUES
	    (1, '["Fri","Sat"]', '09:00', '15:00')
	 ON CONFLICT (id) DO NOTHING`,
}

func main() {
	var (
		dsn      string
		seedData bool
	)
	flag.StringVar(&dsn, "dsn", "host=localhost port=5432 user=postgres password=postgres dbname=class_routine sslmode=disable", "PostgreSQL DSN")
	flag.BoolVar(&seedData, "seed", true, "load development catalog data after creating the schema")
	flag.Parse()

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	fmt.Println("schema ready")

	if !seedData {
		return
	}
	for _, stmt := range seedStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	}
	fmt.Println("catalog seeded")
}
