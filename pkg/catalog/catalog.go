package catalog

import (
	"errors"
	"io/ioutil"
	"sort"
	"strconv"
	"strings"

	"github.com/gobuffalo/packr/v2"
	"github.com/gosimple/slug"
	"github.com/reviewdb/reviewdb/pkg/config"
	"github.com/reviewdb/reviewdb/pkg/helpers"
	"github.com/reviewdb/reviewdb/pkg/log"
)

var ErrDataLoad = errors.New("missing or malformed catalog source")

const datasetName = "steam-top-1000.json"

var dataBox = packr.New("catalog", "./data")

// Game is one row of the bundled top-games dataset. Immutable after load.
type Game struct {
	AppID     int     `json:"appid"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Positive  int     `json:"positive"`
	Negative  int     `json:"negative"`
	NameLower string  `json:"-"`
}

// ReviewScore is the fraction of store votes that are positive.
func (g Game) ReviewScore() float64 {

	total := g.Positive + g.Negative
	if total == 0 {
		return 0
	}
	return float64(g.Positive) / float64(total)
}

func (g Game) GetPath() string {
	return "/games/" + strconv.Itoa(g.AppID) + "/" + slug.Make(g.Name)
}

type Catalog struct {
	games []Game
	byID  map[int]int
}

// Load reads the bundled dataset, or the file at STEAM_CATALOG_PATH when set.
// Call once at startup, the returned value is read-only.
func Load() (*Catalog, error) {

	var b []byte
	var err error

	if config.C.CatalogPath != "" {
		b, err = ioutil.ReadFile(config.C.CatalogPath)
	} else {
		b, err = dataBox.Find(datasetName)
	}
	if err != nil {
		log.ErrS(err)
		return nil, ErrDataLoad
	}

	return load(b)
}

func load(b []byte) (*Catalog, error) {

	// The source is keyed by arbitrary strings, only the values matter
	var source map[string]Game
	err := helpers.Unmarshal(b, &source)
	if err != nil {
		return nil, ErrDataLoad
	}

	if len(source) == 0 {
		return nil, ErrDataLoad
	}

	c := &Catalog{byID: map[int]int{}}

	for _, game := range source {
		game.NameLower = strings.ToLower(game.Name)
		c.games = append(c.games, game)
	}

	sort.Slice(c.games, func(i, j int) bool {
		return c.games[i].AppID < c.games[j].AppID
	})

	for i, game := range c.games {
		c.byID[game.AppID] = i
	}

	return c, nil
}

func (c *Catalog) Games() []Game {
	return c.games
}

// Search does a case-insensitive substring match against every game name.
// An empty query matches everything.
func (c *Catalog) Search(query string) (matches []Game) {

	query = strings.ToLower(query)

	for _, game := range c.games {
		if strings.Contains(game.NameLower, query) {
			matches = append(matches, game)
		}
	}

	return matches
}

func (c *Catalog) Get(appID int) (Game, bool) {

	i, ok := c.byID[appID]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}
