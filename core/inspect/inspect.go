// Package inspect reads tag metadata from an MP3 file without modifying
// it, for display before (or instead of) a sanitize run.
package inspect

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"

	"github.com/scrubaudio/mp3scrub/core"
)

// Inspect returns a report of the tags discoverable in the file at path.
// A file with no tags yields an empty (not nil) report; only failure to
// read the file itself is an error.
func Inspect(path string) (*core.TagReport, error) {
	r := &core.TagReport{FilePath: path, Format: "MP3"}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 16)
	n, _ := io.ReadFull(f, head)
	if !core.SniffMP3(head[:n]) {
		r.Warnings = append(r.Warnings, "content does not look like MPEG audio")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if t, err := tag.ReadFrom(f); err == nil {
		addCommonFields(t, r)
	}
	addID3v2Frames(path, r)
	return r, nil
}

// addCommonFields records the cross-format fields the dhowden reader
// exposes, under the tag format it detected as the category label.
func addCommonFields(t tag.Metadata, r *core.TagReport) {
	cat := string(t.Format())
	if cat == "" {
		cat = "Audio Tags"
	}

	add := func(key, val string) {
		if val != "" {
			r.Fields = append(r.Fields, core.TagField{Key: key, Value: val, Category: cat})
		}
	}

	add("Title", t.Title())
	add("Artist", t.Artist())
	add("Album", t.Album())
	add("AlbumArtist", t.AlbumArtist())
	add("Composer", t.Composer())
	add("Genre", t.Genre())
	add("Comment", t.Comment())
	if t.Year() != 0 {
		add("Year", fmt.Sprintf("%d", t.Year()))
	}
	if track, total := t.Track(); track != 0 {
		s := fmt.Sprintf("%d", track)
		if total != 0 {
			s = fmt.Sprintf("%d/%d", track, total)
		}
		add("TrackNumber", s)
	}
	if t.Lyrics() != "" {
		add("Lyrics", t.Lyrics())
	}
}

// addID3v2Frames lists the raw ID3v2 frame inventory (IDs, counts, byte
// sizes), which is what the sanitizer actually strips or keeps.
func addID3v2Frames(path string, r *core.TagReport) {
	tg, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer tg.Close()

	all := tg.AllFrames()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		frames := all[id]
		total := 0
		for _, fr := range frames {
			total += fr.Size()
		}
		r.Fields = append(r.Fields, core.TagField{
			Key:      id,
			Value:    fmt.Sprintf("%d frame(s), %d bytes", len(frames), total),
			Category: "ID3v2 frames",
		})
	}
}
