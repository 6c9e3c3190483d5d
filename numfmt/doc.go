// Package numfmt renders columns of floating-point samples as fixed-point text
// with a consistent number of decimals across the whole column.
//
// The number of decimals is derived from a significant-digit budget and the
// magnitude of the largest sample:
//
//	integerDigits = max(0, ceil(log10(max(|min|, |max|))))
//	decimals      = clamp(significantDigits - integerDigits, 0, MaxDecimals)
//
// A column of depths 1000.0..1999.5 with a budget of 5 significant digits
// therefore renders with one decimal ("1000.0", "1999.5"), while a gamma-ray
// column of 45.1..78.333 with the default budget of 6 renders with four
// ("45.1000", "78.3330").
//
// Absent samples are represented as NaN and render as the JSON literal "null".
package numfmt
