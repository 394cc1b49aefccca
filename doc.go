/*
Package tsfit fits models to astronomical time series by Markov chain
Monte Carlo and prepares the series for fitting.

Contents

  Suite overview
  Fitting with mcmc
  Time conversion
  Prediction bands
  Supporting packages

Suite overview

Photometric and timing campaigns produce series of measurements
against time: eclipse depths, transit times, radial velocities.
Getting physics out of them usually means three chores.  The
timestamps must be moved onto a uniform time scale, because a series
assembled from several observatories mixes JD, MJD and calendar forms,
UTC and TDB standards, and geocentric, heliocentric and barycentric
reference points.  A parameterized model must then be fit to the
series, with honest uncertainties.  Finally the fit is judged by
plotting the spread of model predictions against the data.

The packages here cover those chores one each.  Package timeconv
converts batches of timestamps, package mcmc runs the fit, and package
predband draws prediction bands from the resulting chain.  Packages
radec and workdir supply coordinate parsing and project directory
location, and the command tconv makes timeconv usable from the shell.

Fitting with mcmc

The model under fit implements the small mcmc.Event interface:
InitParams supplies a starting point, SetParams positions the model,
and LnProb returns the log likelihood of the data.  An ensemble of
walkers explores parameter space with the affine invariant stretch
move, burn-in samples are discarded, and the retained samples give a
best fit and 16th and 84th percentile uncertainties.

A fit prints a report like

  Best chi2: 12.43
  Best parameters:
  t0 = 2455197.512345 +0.000210 -0.000195
  period = 1.338062 +0.000004 -0.000004

and optionally writes the flattened chain as CSV, one row per retained
sample, a column per parameter and a final chi2 column.  The chain
file feeds predband or any plotting tool that reads CSV.

Time conversion

Package timeconv and the tconv command read times as Julian date,
modified Julian date or ISO 8601 calendar form in UTC, or as HJD in
UTC or BJD in TDB, and write any numeric form.  Timestamps marking
exposure start or end move to mid exposure.  Heliocentric and
barycentric corrections project the observer position on the target
direction, with the observer at a named MPC observatory or at the
geocentre, and the target either fixed or tracked along a fitted great
circle for solar system objects.

Conversions use approximations suited to second-level photometric
work, not pulsar timing.  ΔT stands in for TDB-UTC and the
sun-barycentre offset comes from the mean orbits of the giant planets,
leaving barycentric timestamps reliable to roughly 0.2 seconds.

Prediction bands

Package predband accumulates model curves evaluated at samples drawn
from the chain and plots the pointwise median and quantile envelopes,
the usual visual check that the fitted model and its uncertainty
actually cover the data.

Supporting packages

Package radec parses and formats sexagesimal coordinates, accepting
colon or space separated fields and keeping the sign of negative
declinations above -1 degree.  Package workdir walks up from the
current directory to a project root so fitting scripts find their data
files when run from anywhere inside a checkout.

-------------
Public domain.
*/
package tsfit
