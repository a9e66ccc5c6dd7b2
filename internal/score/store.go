package score

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"git.lost.host/meutraa/mania/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

type InputsCompact struct {
	Column uint8
	Times  []time.Duration
}

func compactInputs(inputs []game.Input) []InputsCompact {
	colCount := 0
	for _, i := range inputs {
		if int(i.Column) >= colCount {
			colCount = int(i.Column) + 1
		}
	}
	ins := make([]InputsCompact, colCount)
	for c := range ins {
		ins[c].Column = uint8(c)
		ins[c].Times = []time.Duration{}
	}
	for _, i := range inputs {
		ins[i.Column].Times = append(ins[i.Column].Times, i.HitTime)
	}
	return ins
}

// uncompactInputs restores the inputs in time order. Inputs sharing a
// time keep column order.
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Column: i.Column, HitTime: t})
		}
	}
	sortInputs(ins)
	return ins
}

func sortInputs(ins []game.Input) {
	sort.SliceStable(ins, func(i, j int) bool {
		return ins[i].HitTime < ins[j].HitTime
	})
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	initStatement := `
	create table if not exists scores
	  (
		  id text not null primary key,
		  sum text not null,
		  mods text not null,
		  rate real not null,
		  objects integer not null,
		  judgements blob not null,
		  inputs blob not null,
		  score real not null,
		  created_at timestamp not null
	  );
	create index if not exists idx_scores_sum on scores(sum, created_at);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create scores table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, r *Record) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	judgements, err := json.Marshal(r.Judgements)
	if nil != err {
		return fmt.Errorf("unable to marshal judgements: %w", err)
	}
	inputs, err := json.Marshal(compactInputs(r.Inputs))
	if nil != err {
		return fmt.Errorf("unable to marshal inputs: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"insert into scores(id, sum, mods, rate, objects, judgements, inputs, score, created_at) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID.String(), r.ChartHash, r.Mods, r.Rate, r.HitObjects, judgements, inputs, r.Score, r.CreatedAt)
	if nil != err {
		return fmt.Errorf("unable to save score: %w", err)
	}
	return nil
}

// Load returns the chart's records, oldest first. Rows that cannot be
// decoded are logged and skipped.
func (s *Store) Load(ctx context.Context, chartHash string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"select id, sum, mods, rate, objects, judgements, inputs, score, created_at from scores where sum = ? order by created_at",
		chartHash)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			r                  Record
			id                 string
			judgements, inputs []byte
		)
		if err := rows.Scan(&id, &r.ChartHash, &r.Mods, &r.Rate, &r.HitObjects, &judgements, &inputs, &r.Score, &r.CreatedAt); nil != err {
			return nil, fmt.Errorf("unable to scan score: %w", err)
		}
		if r.ID, err = uuid.Parse(id); nil != err {
			log.Println("unable to parse score id", id, err)
			continue
		}
		if err := json.Unmarshal(judgements, &r.Judgements); nil != err {
			log.Println("unable to unmarshal judgement history", err)
			continue
		}
		var ns []InputsCompact
		if err := json.Unmarshal(inputs, &ns); nil != err {
			log.Println("unable to unmarshal input history", err)
			continue
		}
		r.Inputs = uncompactInputs(ns)
		records = append(records, r)
	}
	return records, rows.Err()
}
