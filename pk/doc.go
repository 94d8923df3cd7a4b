// Package pk implements the pharmacokinetic simulation and dose-titration
// engine behind dialysim.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - model.go: compartment volumes, rate constants, and unit conversions
//   - schedule.go: dose events and extracorporeal removal windows on a time axis
//   - simulator.go: the discrete-time two-compartment integrator
//
// # Architecture
//
// Two trajectory strategies sit behind the Solver interface (trajectory.go):
//
//   - SuperpositionSolver (superposition.go): closed-form one-compartment
//     infusion superposition, exact but valid only while removal clearance
//     stays piecewise-constant and the model is single-compartment.
//   - DiscreteSolver (simulator.go): explicit stepping of central and
//     peripheral amounts, required whenever dialysis windows couple the
//     removal clearance to compartment state.
//
// On top of the solvers:
//
//   - fitter.go inverts a single measured concentration into an elimination
//     rate constant via generic bisection (bisect.go).
//   - advisor.go proposes a revised dose for a trough or AUC24 target and
//     re-simulates the amended schedule for comparison.
//
// Sub-packages:
//   - pk/renal: bedside renal-function estimators (CCr, eGFR, vancomycin kel)
//   - pk/scenario: YAML scenario loading, pipeline orchestration, CSV export
//
// Everything in this package is a pure computation over explicit inputs:
// no goroutines, no I/O, no state retained between calls. Callers own any
// notion of history and resupply complete ordered dose/removal lists on
// every invocation.
package pk
