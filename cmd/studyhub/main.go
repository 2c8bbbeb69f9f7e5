package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"studyhub/internal/bookmarks"
	"studyhub/internal/catalog"
	"studyhub/internal/concurrency"
	"studyhub/internal/config"
	"studyhub/internal/domain"
	"studyhub/internal/export"
	"studyhub/internal/kvstore"
	"studyhub/internal/logger"
	"studyhub/internal/manage"
	"studyhub/internal/progress"
	"studyhub/internal/providers"
	"studyhub/internal/providers/file"
	"studyhub/internal/providers/remote"
	"studyhub/internal/providers/web"
	"studyhub/internal/sftpclient"
	catsync "studyhub/internal/sync"
)

type options struct {
	sources    []string
	search     string
	category   string
	level      string
	sort       catalog.SortOption
	sortInput  string
	categories bool
	toggle     int
	bookmarked bool
	show       int
	score      string
	complete   string
	remove     int
	admin      bool
	saveTo     string
	diffPath   string
	fields     []string
	outPath    string
	uploadSFTP bool
}

func parseFlags(args []string, cfg config.Config) (options, error) {
	fs := flag.NewFlagSet("studyhub", flag.ContinueOnError)
	var (
		sources    = fs.String("catalog", strings.Join(cfg.CatalogSources, ","), "comma-separated catalog sources: path, http(s)://url or sftp:/path")
		search     = fs.String("q", "", "search text (title, description, tags, instructor)")
		category   = fs.String("category", catalog.All, "category filter")
		level      = fs.String("level", catalog.All, "level filter (Beginner, Intermediate, Advanced)")
		sortBy     = fs.String("sort", string(catalog.Popular), "sort: Popular, Newest, Highest Rated, Shortest")
		categories = fs.Bool("categories", false, "list categories and exit")
		toggle     = fs.Int("bookmark", 0, "toggle the bookmark of a course id")
		bookmarked = fs.Bool("bookmarked", false, "only list bookmarked courses")
		show       = fs.Int("show", 0, "show one course with its lessons and test score")
		score      = fs.String("score", "", "record a test score as <courseId>=<score>/<total>")
		complete   = fs.String("complete", "", "mark a lesson done as <courseId>=<lessonNumber>")
		remove     = fs.Int("delete", 0, "delete a course id from the loaded catalog")
		admin      = fs.Bool("admin", false, "list with the management filter (no instructor match, catalog order)")
		saveTo     = fs.String("save-catalog", "", "write the loaded (and edited) catalog as JSON (.json.br for brotli)")
		diffPath   = fs.String("diff", "", "compare the loaded catalog with a previous catalog file and exit")
		fields     = fs.String("fields", "", "print JSON with only these comma-separated fields")
		outPath    = fs.String("out", "", "write the listed courses to a CSV file (.csv.br for brotli)")
		uploadSFTP = fs.Bool("sftp", false, "upload the CSV written by -out via SFTP")
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	o := options{
		sources:    splitCSV(*sources),
		search:     *search,
		category:   *category,
		level:      *level,
		sort:       catalog.ParseSortOption(*sortBy),
		sortInput:  *sortBy,
		categories: *categories,
		toggle:     *toggle,
		bookmarked: *bookmarked,
		show:       *show,
		score:      *score,
		complete:   *complete,
		remove:     *remove,
		admin:      *admin,
		saveTo:     *saveTo,
		diffPath:   *diffPath,
		fields:     splitCSV(*fields),
		outPath:    *outPath,
		uploadSFTP: *uploadSFTP,
	}
	if o.uploadSFTP && o.outPath == "" {
		return o, errors.New("-sftp requires -out")
	}
	return o, nil
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	opts, err := parseFlags(os.Args[1:], cfg)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.FatalErr("invalid arguments", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	if err := run(ctx, cfg, opts, kvstore.NewFile(cfg.StorePath), os.Stdout, log); err != nil {
		log.FatalErr("studyhub failed", err)
	}
	log.Debug("done", "elapsed", time.Since(start).String())
}

func run(ctx context.Context, cfg config.Config, opts options, store kvstore.Store, out io.Writer, log logger.Log) error {
	marks := bookmarks.Open(store)

	if _, ok := catalog.LookupSortOption(opts.sortInput); !ok {
		log.Warn("unknown sort option, using Popular", "sort", opts.sortInput)
	}

	// Bookmarks and scores do not need the catalog.
	if opts.toggle != 0 {
		on, err := marks.Toggle(opts.toggle)
		if err != nil {
			return err
		}
		log.Info("bookmark toggled", "course", opts.toggle, "bookmarked", on)
	}
	if opts.score != "" {
		id, s, err := parseScore(opts.score)
		if err != nil {
			return err
		}
		if err := progress.SaveScore(store, id, s); err != nil {
			return err
		}
		log.Info("test score saved", "course", id, "score", s.Score, "total", s.Total)
	}

	if len(opts.sources) == 0 {
		if opts.toggle != 0 || opts.score != "" {
			return nil
		}
		return errors.New("no catalog sources: pass -catalog or set STUDYHUB_CATALOG")
	}

	list, err := buildProviders(opts.sources, cfg)
	if err != nil {
		return err
	}
	courses, err := providers.LoadAll(ctx, list, concurrency.ParallelOptions{MaxWorkers: cfg.MaxWorkers})
	if err != nil {
		return err
	}
	log.Info("catalog loaded", "sources", len(list), "courses", len(courses))

	if opts.remove != 0 {
		editor := manage.NewEditor(courses)
		if err := editor.Delete(opts.remove); err != nil {
			return err
		}
		courses = editor.List()
		log.Info("course deleted", "course", opts.remove)
	}
	if opts.saveTo != "" {
		if err := export.WriteCatalogJSONFile(opts.saveTo, courses); err != nil {
			return err
		}
		log.Info("catalog written", "path", opts.saveTo, "courses", len(courses))
	}

	if opts.complete != "" {
		if err := completeLesson(store, courses, opts.complete, log); err != nil {
			return err
		}
	}

	if opts.categories {
		for _, c := range catalog.Categories(courses) {
			fmt.Fprintln(out, c)
		}
		return nil
	}

	if opts.diffPath != "" {
		previous, err := file.Provider{Path: opts.diffPath}.ListCourses(ctx)
		if err != nil {
			return err
		}
		changes := catsync.Diff(courses, previous)
		log.Info("catalog diff", "created", len(changes.Created), "updated", len(changes.Updated), "removed", len(changes.Removed))
		printChanges(out, changes)
		return nil
	}

	if opts.show != 0 {
		c, ok := catalog.Find(courses, opts.show)
		if !ok {
			return fmt.Errorf("course %d not found", opts.show)
		}
		return printCourse(out, c, marks.Has(c.ID), store)
	}

	source := courses
	if opts.bookmarked {
		source = bookmarks.Select(courses, marks.Set())
	}
	var view []domain.Course
	if opts.admin {
		view = manage.NewEditor(source).Filter(opts.search, orAll(opts.category), orAll(opts.level))
	} else {
		view = catalog.Query{Search: opts.search, Category: opts.category, Level: opts.level, Sort: opts.sort}.Apply(source)
	}
	log.Debug("query applied", "search", opts.search, "category", opts.category, "level", opts.level, "sort", string(opts.sort), "matches", len(view))

	if len(opts.fields) > 0 {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export.PickAll(view, opts.fields...)); err != nil {
			return err
		}
	} else if err := printTable(out, view, marks.Set()); err != nil {
		return err
	}

	if opts.outPath == "" {
		return nil
	}
	if err := export.WriteCourseCSVFile(opts.outPath, view, marks.Set()); err != nil {
		return err
	}
	log.Info("export written", "path", opts.outPath, "courses", len(view))

	if !opts.uploadSFTP {
		return nil
	}
	upCfg := sftpConfig(cfg)
	upCtx, upCancel := context.WithTimeout(ctx, 5*time.Minute)
	defer upCancel()

	remoteName := filepath.Base(opts.outPath)
	if err := sftpclient.Upload(upCtx, upCfg, opts.outPath, remoteName); err != nil {
		return err
	}
	log.Info("export uploaded", "url", fmt.Sprintf("sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, remoteName))
	return nil
}

func sftpConfig(cfg config.Config) sftpclient.Config {
	return sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		KnownHostsKey:         cfg.SFTPKnownHostKey,
	}
}

// buildProviders maps each source string onto its provider.
func buildProviders(sources []string, cfg config.Config) ([]providers.CatalogProvider, error) {
	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	out := make([]providers.CatalogProvider, 0, len(sources))
	for _, src := range sources {
		switch {
		case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
			out = append(out, web.New(src, timeout))
		case strings.HasPrefix(src, "sftp:"):
			p := strings.TrimPrefix(src, "sftp:")
			if p == "" {
				return nil, fmt.Errorf("empty sftp path in source %q", src)
			}
			out = append(out, remote.Provider{Config: sftpConfig(cfg), Path: p})
		default:
			out = append(out, file.Provider{Path: src})
		}
	}
	return out, nil
}

// parseScore reads "<courseId>=<score>/<total>".
func parseScore(s string) (int, progress.TestScore, error) {
	bad := fmt.Errorf("invalid score %q, want <courseId>=<score>/<total>", s)

	idPart, frac, ok := strings.Cut(s, "=")
	if !ok {
		return 0, progress.TestScore{}, bad
	}
	scorePart, totalPart, ok := strings.Cut(frac, "/")
	if !ok {
		return 0, progress.TestScore{}, bad
	}
	id, err1 := strconv.Atoi(strings.TrimSpace(idPart))
	score, err2 := strconv.Atoi(strings.TrimSpace(scorePart))
	total, err3 := strconv.Atoi(strings.TrimSpace(totalPart))
	if err := errors.Join(err1, err2, err3); err != nil || id <= 0 {
		return 0, progress.TestScore{}, bad
	}
	return id, progress.TestScore{Score: score, Total: total}, nil
}

// completeLesson reads "<courseId>=<lessonNumber>", lesson numbers
// starting at 1 as printed by -show.
func completeLesson(store kvstore.Store, courses []domain.Course, arg string, log logger.Log) error {
	bad := fmt.Errorf("invalid lesson %q, want <courseId>=<lessonNumber>", arg)

	idPart, numPart, ok := strings.Cut(arg, "=")
	if !ok {
		return bad
	}
	id, err1 := strconv.Atoi(strings.TrimSpace(idPart))
	n, err2 := strconv.Atoi(strings.TrimSpace(numPart))
	if errors.Join(err1, err2) != nil {
		return bad
	}

	c, found := catalog.Find(courses, id)
	if !found {
		return fmt.Errorf("course %d not found", id)
	}
	tr, err := progress.LoadTracker(store, c)
	if err != nil {
		return fmt.Errorf("course %d: %w", id, err)
	}
	if n < 1 || n > len(c.Lessons) {
		return fmt.Errorf("course %d has no lesson %d", id, n)
	}
	tr.MarkComplete(n - 1)
	if err := tr.Save(store); err != nil {
		return err
	}
	log.Info("lesson completed", "course", id, "lesson", n, "percent", tr.Percent(), "all", tr.AllCompleted())
	return nil
}

func orAll(s string) string {
	if s == "" {
		return catalog.All
	}
	return s
}

func printTable(out io.Writer, courses []domain.Course, marks bookmarks.Set) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLEVEL\tDURATION\tRATING\tSTUDENTS\tUPDATED\t★")
	for _, c := range courses {
		star := ""
		if marks.Has(c.ID) {
			star = "★"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\t%d\t%s\t%s\n",
			c.ID, c.Title, c.Category, c.Level, c.Duration, c.Rating, c.Students, c.LastUpdated, star)
	}
	return tw.Flush()
}

func printCourse(out io.Writer, c domain.Course, bookmarked bool, store kvstore.Store) error {
	fmt.Fprintf(out, "%s  [%s · %s]\n", c.Title, c.Level, c.Category)
	if c.Instructor.Name != "" {
		fmt.Fprintf(out, "Instructor: %s\n", c.Instructor.Name)
	}
	fmt.Fprintf(out, "Duration: %s  Rating: %.1f  Students: %d  Bookmarked: %v\n", c.Duration, c.Rating, c.Students, bookmarked)
	if c.Description != "" {
		fmt.Fprintf(out, "\n%s\n", c.Description)
	}

	if tr, err := progress.LoadTracker(store, c); err == nil {
		fmt.Fprintf(out, "\nLessons (%d%% complete):\n", tr.Percent())
		for i, l := range c.Lessons {
			done := " "
			if tr.IsComplete(i) {
				done = "x"
			}
			preview := ""
			if l.Preview {
				preview = " (preview)"
			}
			fmt.Fprintf(out, "  [%s] %2d. %s  %s%s\n", done, i+1, l.Title, l.Duration, preview)
		}
	}
	if len(c.Resources) > 0 {
		fmt.Fprintln(out, "\nResources:")
		for _, r := range c.Resources {
			fmt.Fprintf(out, "  - %s (%s, %s)\n", r.Title, r.Type, r.Size)
		}
	}

	if s, ok := progress.LoadScore(store, c.ID); ok {
		fmt.Fprintf(out, "\n%s\n", s)
	}
	return nil
}

func printChanges(out io.Writer, ch catsync.Changes) {
	if ch.Empty() {
		fmt.Fprintln(out, "no changes")
		return
	}
	for _, g := range []struct {
		mark    string
		courses []domain.Course
	}{{"+", ch.Created}, {"~", ch.Updated}, {"-", ch.Removed}} {
		for _, c := range g.courses {
			fmt.Fprintf(out, "%s %d\t%s\n", g.mark, c.ID, c.Title)
		}
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
