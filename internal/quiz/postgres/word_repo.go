// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package postgres implements the quiz repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vocably/vocably/internal/quiz"
	"github.com/vocably/vocably/internal/stats"
	"github.com/vocably/vocably/internal/storage"
)

// WordRepository implements quiz.WordRepository using PostgreSQL. Writes
// touching more than one table run through the Transactor, so every helper
// picks the active transaction out of the context.
type WordRepository struct {
	pool storage.Pool
	tx   *storage.Transactor
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(pool storage.Pool) *WordRepository {
	return &WordRepository{pool: pool, tx: storage.NewTransactor(pool)}
}

// SaveWithAnswers upserts the word and replaces its answers in one
// transaction.
func (r *WordRepository) SaveWithAnswers(ctx context.Context, word *quiz.Word) error {
	err := r.tx.InTransaction(ctx, func(ctx context.Context) error {
		q := storage.QuerierFrom(ctx, r.pool)

		_, err := q.Exec(ctx, `
			INSERT INTO words (id, category_id, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				category_id = EXCLUDED.category_id,
				content = EXCLUDED.content,
				updated_at = EXCLUDED.updated_at
		`,
			word.ID.String(),
			word.CategoryID.String(),
			word.Content,
			word.CreatedAt,
			word.UpdatedAt,
		)
		if err != nil {
			return oops.Code("WORD_SAVE_FAILED").
				With("operation", "upsert word").
				With("id", word.ID.String()).
				Wrap(err)
		}

		if _, err := q.Exec(ctx, `DELETE FROM answers WHERE word_id = $1`, word.ID.String()); err != nil {
			return oops.Code("WORD_SAVE_FAILED").
				With("operation", "clear answers").
				With("id", word.ID.String()).
				Wrap(err)
		}

		for _, a := range word.Answers {
			_, err := q.Exec(ctx, `
				INSERT INTO answers (id, word_id, content, is_correct)
				VALUES ($1, $2, $3, $4)
			`, a.ID.String(), a.WordID.String(), a.Content, a.IsCorrect)
			if err != nil {
				return oops.Code("WORD_SAVE_FAILED").
					With("operation", "insert answer").
					With("id", word.ID.String()).
					With("answer_id", a.ID.String()).
					Wrap(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// GetByID retrieves a word and its answers.
func (r *WordRepository) GetByID(ctx context.Context, id ulid.ULID) (*quiz.Word, error) {
	q := storage.QuerierFrom(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT id, category_id, content, created_at, updated_at
		FROM words
		WHERE id = $1
	`, id.String())

	word, err := scanWord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("WORD_NOT_FOUND").
			With("id", id.String()).
			Wrap(quiz.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("WORD_GET_FAILED").
			With("operation", "get word by id").
			With("id", id.String()).
			Wrap(err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, word_id, content, is_correct
		FROM answers
		WHERE word_id = $1
		ORDER BY id
	`, id.String())
	if err != nil {
		return nil, oops.Code("WORD_GET_FAILED").
			With("operation", "get answers").
			With("id", id.String()).
			Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			answerID  string
			wordID    string
			content   string
			isCorrect bool
		)
		if err := rows.Scan(&answerID, &wordID, &content, &isCorrect); err != nil {
			return nil, oops.Code("WORD_GET_FAILED").
				With("operation", "scan answer").
				With("id", id.String()).
				Wrap(err)
		}
		aID, err := ulid.Parse(answerID)
		if err != nil {
			return nil, oops.Code("WORD_INVALID_ANSWER_ID").
				With("answer_id", answerID).
				Wrap(err)
		}
		wID, err := ulid.Parse(wordID)
		if err != nil {
			return nil, oops.Code("WORD_INVALID_ID").
				With("id", wordID).
				Wrap(err)
		}
		word.Answers = append(word.Answers, quiz.Answer{
			ID:        aID,
			WordID:    wID,
			Content:   content,
			IsCorrect: isCorrect,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("WORD_GET_FAILED").
			With("operation", "iterate answers").
			With("id", id.String()).
			Wrap(err)
	}
	return word, nil
}

// Delete removes the word with its answers and the results referencing
// them, in one transaction.
func (r *WordRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		q := storage.QuerierFrom(ctx, r.pool)
		idStr := id.String()

		cascade := []string{
			`DELETE FROM results WHERE answer_id IN (SELECT id FROM answers WHERE word_id = $1)`,
			`DELETE FROM answers WHERE word_id = $1`,
		}
		for _, stmt := range cascade {
			if _, err := q.Exec(ctx, stmt, idStr); err != nil {
				return oops.Code("WORD_DELETE_FAILED").
					With("operation", "delete dependent rows").
					With("id", idStr).
					Wrap(err)
			}
		}

		result, err := q.Exec(ctx, `DELETE FROM words WHERE id = $1`, idStr)
		if err != nil {
			return oops.Code("WORD_DELETE_FAILED").
				With("operation", "delete word").
				With("id", idStr).
				Wrap(err)
		}
		if result.RowsAffected() == 0 {
			return oops.Code("WORD_NOT_FOUND").
				With("id", idStr).
				Wrap(quiz.ErrNotFound)
		}
		return nil
	})
}

// learnedSubselect matches the words the given user answered correctly in
// one of their lessons. Bound with the user id as $1.
const learnedSubselect = `
	SELECT a.word_id
	FROM answers a
	WHERE a.is_correct
	  AND a.id IN (
		SELECT r.answer_id
		FROM results r
		WHERE r.lesson_id IN (SELECT l.id FROM lessons l WHERE l.user_id = $1)
	  )`

// Learned returns the words userID has answered correctly.
func (r *WordRepository) Learned(ctx context.Context, userID ulid.ULID) ([]*quiz.Word, error) {
	return r.partition(ctx, userID, `
		SELECT id, category_id, content, created_at, updated_at
		FROM words
		WHERE id IN (`+learnedSubselect+`)
		ORDER BY content, id
	`, "WORD_LEARNED_FAILED")
}

// NotLearned returns the words userID has not answered correctly yet.
func (r *WordRepository) NotLearned(ctx context.Context, userID ulid.ULID) ([]*quiz.Word, error) {
	return r.partition(ctx, userID, `
		SELECT id, category_id, content, created_at, updated_at
		FROM words
		WHERE id NOT IN (`+learnedSubselect+`)
		ORDER BY content, id
	`, "WORD_NOT_LEARNED_FAILED")
}

func (r *WordRepository) partition(ctx context.Context, userID ulid.ULID, query, code string) ([]*quiz.Word, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID.String())
	if err != nil {
		return nil, oops.Code(code).
			With("operation", "query word partition").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var words []*quiz.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, oops.Code(code).
				With("operation", "scan word").
				With("user_id", userID.String()).
				Wrap(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code(code).
			With("operation", "iterate words").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return words, nil
}

// CountByMonth buckets word creation by calendar month of created_at. The
// bounds are truncated to their month, so both endpoint months are counted.
func (r *WordRepository) CountByMonth(ctx context.Context, from, to time.Time) ([]stats.MonthBucket, error) {
	q := storage.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COUNT(*) AS count
		FROM words
		WHERE date_trunc('month', created_at) >= date_trunc('month', $1::timestamptz)
		  AND date_trunc('month', created_at) <= date_trunc('month', $2::timestamptz)
		GROUP BY month
		ORDER BY month
	`, from, to)
	if err != nil {
		return nil, oops.Code("WORD_COUNT_BY_MONTH_FAILED").
			With("operation", "count words by month").
			Wrap(err)
	}
	defer rows.Close()

	var buckets []stats.MonthBucket
	for rows.Next() {
		var b stats.MonthBucket
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, oops.Code("WORD_COUNT_BY_MONTH_FAILED").
				With("operation", "scan month bucket").
				Wrap(err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("WORD_COUNT_BY_MONTH_FAILED").
			With("operation", "iterate month buckets").
			Wrap(err)
	}
	return buckets, nil
}

// scanWord scans a single word row without its answers.
// Callers are responsible for handling pgx.ErrNoRows.
func scanWord(row pgx.Row) (*quiz.Word, error) {
	var (
		idStr      string
		categoryID string
		content    string
		createdAt  time.Time
		updatedAt  time.Time
	)
	err := row.Scan(&idStr, &categoryID, &content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("WORD_SCAN_FAILED").
			With("operation", "scan word").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("WORD_INVALID_ID").
			With("operation", "parse word id").
			With("id", idStr).
			Wrap(err)
	}
	catID, err := ulid.Parse(categoryID)
	if err != nil {
		return nil, oops.Code("WORD_INVALID_CATEGORY_ID").
			With("operation", "parse category id").
			With("category_id", categoryID).
			Wrap(err)
	}

	return &quiz.Word{
		ID:         id,
		CategoryID: catID,
		Content:    content,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Compile-time interface check.
var _ quiz.WordRepository = (*WordRepository)(nil)
