/*
Command tconv converts batches of astronomical timestamps between time
formats, standards and light travel reference points.

Usage

Command line options:

  tconv [options] <timefile>    convert times in file
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

Input

The time file holds one time per line.  If a line has several
whitespace separated fields the first is taken and the rest ignored,
so the time column of a typical photometry file works directly.  Blank
lines are skipped.

Formats jd_utc, mjd_utc, hjd_utc and bjd_tdb are numeric.  Format
isot_utc is calendar form, as in 2019-03-21T12:34:56.789, and can only
be read, not written.  Format mjd_tdb can only be written.

Times marking the start or end of an exposure are moved to mid
exposure using the -e exposure time before any other conversion.

Target and observatory

Heliocentric and barycentric conversions project the observer position
on the direction to the target, so they need -r and -d, or a -m
observation file.  tconv exits with an error if neither is given.
Coordinates are sexagesimal with colon or space separators,
16:13:11.57 and +20:52:23.7 for example.  The parsed target is echoed
to standard error as confirmation.

The -c option selects an observatory from the MPC obscode file for
topocentric light travel.  Without it the observer is taken at the
geocentre, which is within a few hundredths of a second for any ground
site.  If the obscode file named by -o cannot be read, a fresh copy is
fetched from the MPC.

For solar system objects that move appreciably over the time series,
-m gives a file of 80 column MPC observations.  The first arc of at
least two observations is fitted with great circle motion and the
fitted position at each timestamp replaces the fixed -r -d target.

Output

Converted times print one per line to standard output, in days with
eight decimal places, just under a millisecond.
*/
package main
