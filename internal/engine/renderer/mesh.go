package renderer

import "github.com/Faultbox/boxstage/pkg/math"

// cubeVertices is a unit cube centered at the origin, counter-clockwise
// outward faces, interleaved [x y z nx ny nz].
var cubeVertices = buildCube()

func buildCube() []float32 {
	// Each face as normal plus tangents with u × v = normal.
	faces := [6][3]math.Vec3{
		{{X: 1}, {Y: 1}, {Z: 1}},
		{{X: -1}, {Z: 1}, {Y: 1}},
		{{Y: 1}, {Z: 1}, {X: 1}},
		{{Y: -1}, {X: 1}, {Z: 1}},
		{{Z: 1}, {X: 1}, {Y: 1}},
		{{Z: -1}, {Y: 1}, {X: 1}},
	}

	verts := make([]float32, 0, 6*6*6)
	for _, f := range faces {
		n, u, v := f[0], f[1].Scale(0.5), f[2].Scale(0.5)
		c := n.Scale(0.5)
		p0 := c.Sub(u).Sub(v)
		p1 := c.Add(u).Sub(v)
		p2 := c.Add(u).Add(v)
		p3 := c.Sub(u).Add(v)
		for _, p := range []math.Vec3{p0, p1, p2, p0, p2, p3} {
			verts = append(verts, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
		}
	}
	return verts
}

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vNormal;

void main() {
	// Models only translate and scale, so axis-aligned normals keep their direction.
	vNormal = aNormal;
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec3 uColor;
uniform float uOpacity;
uniform vec3 uAmbient;
uniform vec3 uLightDir;
uniform vec3 uLightColor;

out vec4 FragColor;

void main() {
	vec3 n = normalize(gl_FrontFacing ? vNormal : -vNormal);
	float diffuse = max(dot(n, normalize(uLightDir)), 0.0);
	vec3 lit = uColor * (uAmbient + uLightColor * diffuse);
	FragColor = vec4(min(lit, vec3(1.0)), uOpacity);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`

// The sky is a fullscreen triangle. Each fragment unprojects to a view ray
// and takes its colour from the ray's height, like a sphere around the eye.
const skyVertexShader = `
#version 410 core

out vec2 vNDC;

void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2) * 2.0 - 1.0;
	vNDC = p;
	gl_Position = vec4(p, 1.0, 1.0);
}
`

const skyFragmentShader = `
#version 410 core

in vec2 vNDC;

uniform mat4 uInvViewProj;
uniform vec3 uEye;
uniform vec3 uTop;
uniform vec3 uBottom;
uniform float uExponent;

out vec4 FragColor;

void main() {
	vec4 far = uInvViewProj * vec4(vNDC, 1.0, 1.0);
	float h = normalize(far.xyz / far.w - uEye).y;
	float t = min(pow(max(h, 0.0), uExponent), 1.0);
	FragColor = vec4(mix(uBottom, uTop, t), 1.0);
}
`
