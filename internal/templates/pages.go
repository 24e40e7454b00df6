package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jjenkins/civiq/internal/model"
)

// HomeData is what the home page needs
type HomeData struct {
	Zip       string
	Error     string
	Districts []model.ZipDistrict
}

// Home renders the ZIP search form and, after a search, the districts found
func Home(data HomeData) templ.Component {
	return Layout("Find your representatives", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &writer{w: w}
		pw.printf("<h1>Find your representatives</h1>\n")
		pw.printf(`<form method="get" action="/">
<label for="zip">ZIP code</label>
<input id="zip" name="zip" inputmode="numeric" pattern="[0-9]{5}" maxlength="5" value="%s" required>
<button type="submit">Search</button>
</form>
`, templ.EscapeString(data.Zip))

		if data.Error != "" {
			pw.printf("<p class=\"notice\">%s</p>\n", templ.EscapeString(data.Error))
		}

		if len(data.Districts) > 1 {
			pw.printf("<p>ZIP %s spans %d congressional districts.</p>\n<ul>\n", templ.EscapeString(data.Zip), len(data.Districts))
			for _, d := range data.Districts {
				id := templ.EscapeString(d.DistrictID())
				pw.printf("<li><a href=\"/districts/%s\">%s</a></li>\n", id, id)
			}
			pw.printf("</ul>\n")
		}
		return pw.err
	}))
}

// Representative renders a member profile
func Representative(resp model.RepresentativeResponse) templ.Component {
	rep := resp.Representative
	return Layout(rep.Name, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &writer{w: w}
		pw.printf("<h1>%s</h1>\n", templ.EscapeString(rep.Name))
		if rep.ImageURL != "" {
			pw.printf("<img src=\"%s\" alt=\"%s\" width=\"160\">\n", attrURL(rep.ImageURL), templ.EscapeString(rep.Name))
		}

		pw.printf("<table>\n")
		pw.row("Party", rep.Party)
		pw.row("Chamber", rep.Chamber)
		pw.row("State", rep.State)
		if rep.District != "" {
			pw.printf("<tr><th>District</th><td><a href=\"/districts/%s\">%s</a></td></tr>\n",
				templ.EscapeString(rep.State+"-"+rep.District), templ.EscapeString(rep.District))
		}
		pw.row("Phone", rep.Phone)
		pw.row("Office", rep.OfficeAddress)
		if rep.OfficialURL != "" {
			pw.printf("<tr><th>Website</th><td><a href=\"%s\" rel=\"noopener\">%s</a></td></tr>\n",
				attrURL(rep.OfficialURL), templ.EscapeString(rep.OfficialURL))
		}
		pw.printf("</table>\n")

		if len(rep.Terms) > 0 {
			pw.printf("<h2>Terms</h2>\n<table>\n<tr><th>Congress</th><th>Chamber</th><th>Years</th></tr>\n")
			for i := len(rep.Terms) - 1; i >= 0; i-- {
				t := rep.Terms[i]
				years := strconv.Itoa(t.StartYear)
				if t.EndYear != 0 {
					years += "-" + strconv.Itoa(t.EndYear)
				}
				pw.printf("<tr><td>%d</td><td>%s</td><td>%s</td></tr>\n", t.Congress, templ.EscapeString(t.Chamber), years)
			}
			pw.printf("</table>\n")
		}

		pw.notices(resp.Metadata.Unavailable, resp.Metadata.Flags)
		pw.printf("<p class=\"muted\">Source: %s</p>\n", templ.EscapeString(resp.Metadata.DataSource))
		return pw.err
	}))
}

// District renders district demographics and its representative
func District(resp model.DistrictResponse) templ.Component {
	d := resp.District
	title := d.ID
	if d.Name != "" {
		title = d.Name
	}

	return Layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &writer{w: w}
		pw.printf("<h1>%s</h1>\n", templ.EscapeString(title))
		if d.AtLarge {
			pw.printf("<p>At-large district</p>\n")
		}

		if rep := d.Representative; rep != nil {
			pw.printf("<p>Represented by <a href=\"/representative/%s\">%s</a> (%s)</p>\n",
				templ.EscapeString(rep.BioguideID), templ.EscapeString(rep.Name), templ.EscapeString(rep.Party))
		}

		demo := d.Demographics
		if demo.Population > 0 {
			pw.printf("<h2>Demographics</h2>\n<table>\n")
			pw.row("Population", strconv.Itoa(demo.Population))
			pw.row("Median household income", fmt.Sprintf("$%d", demo.MedianIncome))
			pw.row("Median age", strconv.FormatFloat(demo.MedianAge, 'f', 1, 64))
			pw.row("White", percent(demo.WhitePercent))
			pw.row("Black", percent(demo.BlackPercent))
			pw.row("Asian", percent(demo.AsianPercent))
			pw.row("Hispanic or Latino", percent(demo.HispanicPercent))
			pw.row("Bachelor's degree", percent(demo.BachelorsPercent))
			pw.row("Below poverty line", percent(demo.PovertyPercent))
			pw.row("Diversity index", strconv.FormatFloat(demo.DiversityIndex, 'f', 1, 64))
			pw.printf("</table>\n")
		}

		pw.notices(resp.Metadata.Unavailable, resp.Metadata.Flags)
		pw.printf("<p class=\"muted\">Source: %s</p>\n", templ.EscapeString(resp.Metadata.DataSource))
		return pw.err
	}))
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// attrURL sanitizes an upstream URL for an href or src attribute
func attrURL(raw string) string {
	return templ.EscapeString(string(templ.URL(raw)))
}
