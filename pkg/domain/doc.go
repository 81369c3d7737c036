/*
Package domain contains the core domain models of the descent engine.

It defines the values that flow between the translator, the field evaluator, the
sampler, the tracer and the animation scheduler. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Point: A position (x, y) in the plane of the field.
  - Waypoint: One recorded (x, y, z) sample along a traced path.
  - Ranges: The axis bounds of a surface plot.
  - Grid: A row-major height field sampled over Ranges.
  - Trace: An immutable waypoint sequence plus the reason the walk stopped.
*/
package domain
