// Package trello implements domain.CardWriter against a Trello board.
package trello

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/adlio/trello"
	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/domain"
)

var boardURLPattern = regexp.MustCompile(`/b/([a-zA-Z0-9]+)`)

// Board writes cards to a single Trello board. Lists and labels are cached
// for the lifetime of the adapter; one scan publishes to one board.
type Board struct {
	client  *trello.Client
	board   *trello.Board
	logger  *zap.Logger
	listIDs map[string]string // lower list name -> id
	labels  map[string]string // lower label name -> id
}

// New connects to the board identified by boardID, which may be a bare ID
// or a full https://trello.com/b/... URL.
func New(apiKey, token, boardID string, logger *zap.Logger) (*Board, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := trello.NewClient(apiKey, token)
	board, err := client.GetBoard(ExtractBoardID(boardID), trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("accessing trello board %s: %w", boardID, err)
	}
	return &Board{
		client: client,
		board:  board,
		logger: logger,
	}, nil
}

// ExtractBoardID accepts a board ID in raw or URL form.
func ExtractBoardID(boardID string) string {
	if strings.HasPrefix(boardID, "http") {
		if m := boardURLPattern.FindStringSubmatch(boardID); m != nil {
			return m[1]
		}
	}
	return boardID
}

// CreateCard creates one card, resolving its target list by name and
// attaching labels, creating any label that does not exist yet.
func (b *Board) CreateCard(ctx context.Context, card domain.Card) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.loadBoard(); err != nil {
		return "", err
	}

	listID, err := b.resolveList(card.List)
	if err != nil {
		return "", err
	}

	var labelIDs []string
	for _, name := range card.Labels {
		id, err := b.ensureLabel(name)
		if err != nil {
			b.logger.Warn("label creation failed", zap.String("label", name), zap.Error(err))
			continue
		}
		labelIDs = append(labelIDs, id)
	}

	tc := &trello.Card{
		Name:     card.Title,
		Desc:     card.Description,
		IDList:   listID,
		IDLabels: labelIDs,
	}
	if err := b.client.CreateCard(tc, trello.Defaults()); err != nil {
		return "", fmt.Errorf("creating card %q: %w", card.Title, err)
	}
	return tc.ID, nil
}

// SetupBoard ensures the standard lists and labels exist.
func (b *Board) SetupBoard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.loadBoard(); err != nil {
		return err
	}

	for _, name := range domain.StandardLists {
		if _, ok := b.listIDs[strings.ToLower(name)]; ok {
			continue
		}
		if err := b.createList(name); err != nil {
			return fmt.Errorf("creating list %q: %w", name, err)
		}
	}
	for _, label := range domain.StandardLabels {
		if _, err := b.ensureLabel(label.Name); err != nil {
			return fmt.Errorf("creating label %q: %w", label.Name, err)
		}
	}
	return nil
}

// loadBoard populates the list and label caches on first use.
func (b *Board) loadBoard() error {
	if b.listIDs != nil {
		return nil
	}

	lists, err := b.board.GetLists(trello.Defaults())
	if err != nil {
		return fmt.Errorf("fetching board lists: %w", err)
	}
	labels, err := b.board.GetLabels(trello.Defaults())
	if err != nil {
		return fmt.Errorf("fetching board labels: %w", err)
	}

	b.listIDs = make(map[string]string, len(lists))
	for _, l := range lists {
		b.listIDs[strings.ToLower(l.Name)] = l.ID
	}
	b.labels = make(map[string]string, len(labels))
	for _, l := range labels {
		if l.Name != "" {
			b.labels[strings.ToLower(l.Name)] = l.ID
		}
	}
	return nil
}

// resolveList maps a list name to its ID, falling back to the first list
// on the board when the named one does not exist.
func (b *Board) resolveList(name string) (string, error) {
	if id, ok := b.listIDs[strings.ToLower(name)]; ok {
		return id, nil
	}
	lists, err := b.board.GetLists(trello.Defaults())
	if err != nil || len(lists) == 0 {
		return "", fmt.Errorf("board has no usable list for %q", name)
	}
	return lists[0].ID, nil
}

func (b *Board) createList(name string) error {
	var created trello.List
	err := b.client.Post("boards/"+b.board.ID+"/lists", trello.Arguments{
		"name": name,
		"pos":  "bottom",
	}, &created)
	if err != nil {
		return err
	}
	b.listIDs[strings.ToLower(name)] = created.ID
	return nil
}

// ensureLabel returns the ID of an existing label or creates it with the
// standard color, defaulting to blue.
func (b *Board) ensureLabel(name string) (string, error) {
	if id, ok := b.labels[strings.ToLower(name)]; ok {
		return id, nil
	}

	color := "blue"
	for _, l := range domain.StandardLabels {
		if strings.EqualFold(l.Name, name) {
			color = l.Color
			break
		}
	}

	var created trello.Label
	err := b.client.Post("labels", trello.Arguments{
		"name":    name,
		"color":   color,
		"idBoard": b.board.ID,
	}, &created)
	if err != nil {
		return "", err
	}
	b.labels[strings.ToLower(name)] = created.ID
	return created.ID, nil
}
