// Public domain.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/observation"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"tsfit/radec"
	"tsfit/timeconv"
)

const versionString = "tconv version 1.0 Go source."
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()
	cl := parseCommandLine()
	convert(cl, configure(cl))
}

type commandLine struct {
	inFmt   string // -i
	outFmt  string // -f
	stamp   string // -t
	ra, dec string // -r, -d
	exp     float64
	code    string // observatory
	ocd     string // obscode file
	obsFile string // observations of a moving target
	fnTimes string
}

func parseCommandLine() *commandLine {
	var cl commandLine
	vers := flag.Bool("v", false, "")
	flag.StringVar(&cl.inFmt, "i", string(timeconv.JDUTC), "")
	flag.StringVar(&cl.outFmt, "f", string(timeconv.BJDTDB), "")
	flag.StringVar(&cl.stamp, "t", string(timeconv.Mid), "")
	flag.StringVar(&cl.ra, "r", "", "")
	flag.StringVar(&cl.dec, "d", "", "")
	flag.Float64Var(&cl.exp, "e", 0, "")
	flag.StringVar(&cl.code, "c", "", "")
	flag.StringVar(&cl.ocd, "o", "obscode.dat", "")
	flag.StringVar(&cl.obsFile, "m", "", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: tconv [options] <timefile>    convert times in file
       tconv [options] -             convert times from stdin
       tconv -v                      display version and copyright

Options:
       -i <format>       input time format
       -f <format>       output time format
       -t <stamp>        input times mark start, mid or end of exposure
       -r <ra>           target right ascension, sexagesimal hours
       -d <dec>          target declination, sexagesimal degrees
       -e <seconds>      exposure time
       -c <obscode>      MPC observatory code
       -o <obscode-file> obscode file, fetched if unreadable
       -m <obsfile>      80 column observations of a moving target

Formats: jd_utc, isot_utc, mjd_utc, hjd_utc and bjd_tdb are read,
jd_utc, mjd_utc, mjd_tdb, hjd_utc and bjd_tdb are written.

Default:
       -i=jd_utc -f=bjd_tdb -t=mid -o=obscode.dat
`)
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	cl.fnTimes = flag.Arg(0)
	return &cl
}

func configure(cl *commandLine) *timeconv.Converter {
	in, err := timeconv.ParseFormat(cl.inFmt)
	if err != nil {
		exit.Log(err)
	}
	out, err := timeconv.ParseFormat(cl.outFmt)
	if err != nil {
		exit.Log(err)
	}
	st, err := timeconv.ParseStamp(cl.stamp)
	if err != nil {
		exit.Log(err)
	}
	c := &timeconv.Converter{
		In:      in,
		Out:     out,
		Stamp:   st,
		ExpTime: unit.Time(cl.exp),
	}
	if (cl.ra == "") != (cl.dec == "") {
		exit.Log("give both -r and -d or neither")
	}
	if cl.ra != "" {
		eq, err := radec.Parse(cl.ra, cl.dec)
		if err != nil {
			exit.Log(err)
		}
		c.Target = &eq
		fmt.Fprintf(os.Stderr, "target %v %v\n",
			sexa.FmtRA(eq.RA), sexa.FmtAngle(eq.Dec))
	}
	var ocdMap observation.ParallaxMap
	if cl.code != "" || cl.obsFile != "" {
		ocdMap = readOcd(cl.ocd)
	}
	if cl.code != "" {
		par, ok := ocdMap[cl.code]
		if !ok {
			exit.Log(fmt.Sprintf("obscode %s not in %s", cl.code, cl.ocd))
		}
		c.Site = par
	}
	if cl.obsFile != "" {
		a := readArc(cl.obsFile, ocdMap)
		if err := c.UseArc(a); err != nil {
			exit.Log(err)
		}
		fmt.Fprintf(os.Stderr, "tracking %s over %d observations\n",
			a.Desig, len(a.Obs))
	}
	// catch configuration errors, a missing target in particular,
	// before any input is read
	if err := c.Validate(); err != nil {
		exit.Log(err)
	}
	return c
}

// readOcd reads the obscode file, fetching a fresh copy if the read
// fails.
func readOcd(fn string) observation.ParallaxMap {
	ocdMap, readErr := mpcformat.ReadObscodeDatFile(fn)
	if readErr == nil {
		return ocdMap
	}
	if err := mpcformat.FetchObscodeDat(fn); err != nil {
		log.Println(readErr) // show error from read attempt,
		exit.Log(err)        // and error from download attempt
	}
	if ocdMap, readErr = mpcformat.ReadObscodeDatFile(fn); readErr != nil {
		exit.Log(readErr)
	}
	return ocdMap
}

// readArc returns the first arc of at least two observations in the 80
// column file fn.  parse errors and single observations are skipped.
func readArc(fn string, ocdMap observation.ParallaxMap) *observation.Arc {
	f, err := os.Open(fn)
	if err != nil {
		exit.Log(err)
	}
	defer f.Close()
	for s := mpcformat.ArcSplitter(f, ocdMap); ; {
		a, err := s()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(mpcformat.ArcError); ok {
				continue
			}
			exit.Log(err)
		}
		if len(a.Obs) < 2 {
			continue
		}
		return &observation.Arc{
			Desig: a.Desig,
			Obs:   append([]observation.VObs{}, a.Obs...),
		}
	}
	exit.Log(fmt.Sprintf("no usable arc in %s", fn))
	return nil
}

// convert reads one time per line, first field of the line if there
// are several, converts the batch and prints one result per line.
func convert(cl *commandLine, c *timeconv.Converter) {
	var f *os.File
	if cl.fnTimes == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(cl.fnTimes)
		if err != nil {
			exit.Log(err)
		}
		defer f.Close()
	}
	iso := c.In == timeconv.ISOTUTC
	var times []float64
	var isoTimes []string
	scn := bufio.NewScanner(f)
	for scn.Scan() {
		flds := strings.Fields(scn.Text())
		if len(flds) == 0 {
			continue
		}
		if iso {
			isoTimes = append(isoTimes, flds[0])
			continue
		}
		t, err := strconv.ParseFloat(flds[0], 64)
		if err != nil {
			exit.Log(err)
		}
		times = append(times, t)
	}
	if err := scn.Err(); err != nil {
		exit.Log(err)
	}
	var out []float64
	var err error
	if iso {
		out, err = c.ConvertISO(isoTimes)
	} else {
		out, err = c.Convert(times)
	}
	if err != nil {
		exit.Log(err)
	}
	w := bufio.NewWriter(os.Stdout)
	for _, t := range out {
		fmt.Fprintf(w, "%.8f\n", t)
	}
	if err := w.Flush(); err != nil {
		exit.Log(err)
	}
}
