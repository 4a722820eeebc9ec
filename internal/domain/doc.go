// Package domain verifies storm-surge model water levels against tide-gauge
// observations.
//
// # Data Source
//
// Station pairs arrive from the upstream loader, which reads model point output
// (netCDF "zeta" at stations) and CO-OPS observations and publishes one JSON
// message per station and forecast cycle to the Kafka source topic. Samples may
// be in any order, may repeat timestamps, and may carry null values or, for
// masked model output, a "masked" flag.
//
// # Forecast Cycles
//
// Cycles are issued nominally at 00, 06, 12 and 18 UTC and published about
// 5h20m later:
//
//	00z -> 05:20   06z -> 11:20   12z -> 17:20   18z -> 23:20
//
// Before 05:20 UTC the latest available run is the previous day's 18z. See
// [LatestCycle]. The package clock is read at call time and can be frozen in
// tests with [SetClock].
//
// # Alignment
//
// Observed and model series are sampled irregularly (6-minute gauges, hourly or
// 15-minute model output, gaps from outages). [Clean] sorts each series and
// drops masked, missing and duplicate samples. [Project] then builds a uniform
// reference timeline (6 minutes by default) and linearly interpolates both
// series onto it:
//
//	observed  o----o--o-------o----o
//	model       m-------m-------m-------m
//	timeline    |  |  |  |  |  |  |      (intersection extent)
//
// The extent policy is explicit. Intersection (the default) covers only the
// span both series observe. Union covers both spans; points outside a series'
// range are unprojectable for that series and never extrapolated.
//
// # Statistics
//
// [ComputeMetrics] reports:
//
//	RMSD            sqrt(mean((model - observed)^2)) over points with both values
//	PeakError       max(observed) - max(model), each over its own valid points
//	PeakLagMinutes  observed peak time - model peak time (positive: model early)
//
// With no shared points the metrics are unavailable ([ErrNoValidSamples]);
// [Verify] turns that into a result with Available=false so reports keep going.
//
// # Coordinates
//
// ESTOFS v1 (Pacific) point files store station coordinates in scaled units;
// their netCDF title contains "PACIFIC". [NormalizeCoordinates] converts them to
// degrees. v2 files are already in degrees.
//
// # ID Generation
//
// Result IDs are deterministic SHA-256 hashes of station|cycle|step|extent so
// reprocessing a station pair replaces the earlier result downstream.
package domain
