// Package quad implements the 6-DOF rigid-body model of a quadrotor.
//
// The package owns the vehicle state (position, velocity, Euler attitude,
// body angular rates) and the physical constants, and exposes a fixed-step
// explicit-Euler integrator that consumes applied thrust/torques:
//
//   - [Params]: physical constants, validated at construction
//   - [State]: immutable snapshot of the 12-state vector plus last controls
//   - [Quadrotor]: the model; SetControl then Step advances one tick
//
// Attitude uses the ZYX Euler convention (yaw outer, pitch middle, roll
// inner). Roll and pitch saturate at MaxAngle, yaw wraps into (-pi, pi].
// The ground is an inelastic floor at z = 0.
//
// # Thread Safety
//
// Quadrotor instances are NOT thread-safe; each is owned by a single
// simulation loop.
package quad
