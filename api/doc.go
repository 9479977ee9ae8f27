// Package api contains the typed resource modules of the Aula Inteligente
// backend: one service per console screen (students, teachers, tutors,
// courses, subjects, grades, attendance, participation, groups) plus the
// auth endpoints and the dashboard statistics.
//
// Every endpoint has an explicit request/response structure — payload shape
// is validated at this boundary by the JSON decoder rather than trusted
// downstream. List endpoints share the backend's pagination envelope
// (count/next/previous/results) and the page/page_size/search/ordering
// query parameters.
//
// The package performs no authentication of its own: it rides whatever
// http.Client it is given, which in practice carries the authorized
// transport.
package api
